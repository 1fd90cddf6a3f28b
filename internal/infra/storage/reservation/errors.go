package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда частичный уникальный индекс отклонил
	// вставку: слот уже удерживается живой бронью (pending или done)
	ErrSlotTaken = errors.New("reservation.repository: slot already taken")

	// ErrReservationNotPending возвращается, когда бронь уже покинула pending
	// (конкурирующая отмена или завершение) и переход статуса невозможен
	ErrReservationNotPending = errors.New("reservation.repository: reservation is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
