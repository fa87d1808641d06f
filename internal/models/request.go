package models

import "time"

// Статусы заявки на обучение. Статус pending — начальный;
// accepted и rejected — терминальные.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// TuitionRequest — заявка студента на занятия с конкретным репетитором.
// Инвариант: EndDate всегда равен StartDate плюс DurationMonths календарных
// месяцев и пересчитывается перед сохранением при изменении любого из них.
type TuitionRequest struct {
	ID             int       // Идентификатор заявки
	StudentUID     string    // Студент, создавший заявку
	TutorUID       string    // Репетитор, которому адресована заявка
	Subject        string    // Предмет
	GradeLevel     string    // Класс обучения
	PreferredDays  []string  // Предпочитаемые дни недели
	PreferredTime  string    // Предпочитаемое время занятий
	DurationMonths int       // Длительность в месяцах
	StartDate      time.Time // Дата начала занятий
	EndDate        time.Time // Дата окончания, выводится из StartDate и DurationMonths
	Status         string    // pending, accepted или rejected
	MonthlyFee     int       // Месячная плата
	Notes          string    // Примечания студента
	CreatedAt      time.Time // Дата создания заявки
}

// TuitionRequestInfo — заявка с карточками студента и репетитора
// для списков и админских выборок.
type TuitionRequestInfo struct {
	Request TuitionRequest
	Student UserSummary
	Tutor   UserSummary
}

// DummyTuitionRequest используется для приёма данных новой заявки из JSON-запроса.
// Дата начала приходит строкой в формате 02-01-2006 и парсится в сервисе.
type DummyTuitionRequest struct {
	TutorUID       string   `json:"tutor_uid" validate:"required,uuid"`
	Subject        string   `json:"subject" validate:"required,min=2,max=100"`
	GradeLevel     string   `json:"grade_level" validate:"required,max=50"`
	PreferredDays  []string `json:"preferred_days" validate:"required,min=1,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	PreferredTime  string   `json:"preferred_time" validate:"required,max=100"`
	DurationMonths int      `json:"duration_months" validate:"required,min=1"`
	StartDate      string   `json:"start_date" validate:"required"`
	MonthlyFee     int      `json:"monthly_fee" validate:"required,gt=0"`
	Notes          string   `json:"notes" validate:"omitempty,max=1000"`
}
