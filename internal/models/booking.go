package models

import "time"

// Статусы бронирования. Статус active — начальный; completed выставляется
// лениво при чтении списка после истечения даты окончания; cancelled —
// по явному запросу владельца.
const (
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Extension — одна запись журнала продлений бронирования.
type Extension struct {
	PreviousEndDate time.Time // Дата окончания до продления
	NewEndDate      time.Time // Дата окончания после продления
	ExtendedOn      time.Time // Момент продления
}

// Booking — подтвержденное обучение, создаваемое ровно один раз
// в момент принятия заявки репетитором. Поля расписания копируются
// из заявки; журнал продлений пополняется только самим бронированием.
type Booking struct {
	ID               int         // Идентификатор бронирования
	RequestID        int         // Ссылка на исходную заявку (только чтение)
	StudentUID       string      // Студент
	TutorUID         string      // Репетитор
	Subject          string      // Предмет
	StartDate        time.Time   // Дата начала
	EndDate          time.Time   // Текущая дата окончания
	DaysOfWeek       []string    // Дни занятий, скопированы из заявки
	TimeSlot         string      // Время занятий, скопировано из заявки
	MonthlyFee       int         // Месячная плата
	Status           string      // active, completed или cancelled
	Extended         bool        // Было ли бронирование хотя бы раз продлено
	ExtensionHistory []Extension // Упорядоченный журнал продлений
	CreatedAt        time.Time   // Дата создания
}

// BookingInfo — бронирование с карточками студента и репетитора.
type BookingInfo struct {
	Booking Booking
	Student UserSummary
	Tutor   UserSummary
}

// DummyBookingStatus используется для приёма нового статуса бронирования.
type DummyBookingStatus struct {
	Status string `json:"status" validate:"required,oneof=active completed cancelled"`
}

// DummyExtend используется для приёма запроса на продление бронирования.
type DummyExtend struct {
	BookingID        int `json:"booking_id" validate:"required,gt=0"`
	AdditionalMonths int `json:"additional_months" validate:"required,min=1"`
}
