package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у клиента нет прав на бронь
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронь нельзя отменить
	// (done и canceled - терминальные статусы)
	ErrCannotCancel = errors.New("reservation cannot be canceled")

	// ErrCannotMarkDone возвращается, когда бронь нельзя завершить
	ErrCannotMarkDone = errors.New("reservation cannot be marked done")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
