package create_reservation

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("create_reservation: consultation not found")

	// ErrConsultationClosed возвращается, когда день закрыт политикой выходных
	ErrConsultationClosed = errors.New("create_reservation: consultation is closed on this date")

	// ErrInvalidSlot возвращается, когда запрошенное время не является
	// слотом-кандидатом генератора, уже прошло сегодня или дата в прошлом
	ErrInvalidSlot = errors.New("create_reservation: invalid slot")

	// ErrSlotConflict возвращается, когда слот уже удерживается живой бронью
	// или конкурирующая запись выиграла гонку
	ErrSlotConflict = errors.New("create_reservation: slot conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
