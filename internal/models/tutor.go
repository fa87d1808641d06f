package models

import "time"

// TutorProfile — расширение записи пользователя-репетитора (связь 1:1).
// Создается пустым при регистрации с ролью tutor и заполняется
// самим репетитором через отдельную конечную точку.
type TutorProfile struct {
	UserUID      string    // Идентификатор пользователя-репетитора
	Subjects     []string  // Преподаваемые предметы
	Experience   int       // Опыт преподавания в годах
	Availability string    // Доступность в свободной форме
	MonthlyRate  int       // Ожидаемая месячная ставка
	Rating       float64   // Средний рейтинг
	NumReviews   int       // Количество отзывов
	Education    []string  // Образование
	About        string    // О себе
	CreatedAt    time.Time // Дата создания профиля
}

// Tutor объединяет учетную запись репетитора и его профиль
// для каталога репетиторов.
type Tutor struct {
	User    User
	Profile TutorProfile
}

// TutorFilter — фильтры каталога репетиторов. Все фильтры применяются
// в памяти после выборки активных незаблокированных репетиторов:
// подстрочное сравнение без учета регистра по предмету и адресу,
// порог по минимальному опыту.
type TutorFilter struct {
	Subject       string
	Location      string
	MinExperience int
}

// DummyTutorProfileUpdate — частичное обновление профиля репетитора.
type DummyTutorProfileUpdate struct {
	Subjects     []string `json:"subjects" validate:"omitempty,dive,min=1"`
	Experience   *int     `json:"experience" validate:"omitempty,gte=0"`
	Availability string   `json:"availability" validate:"omitempty,max=500"`
	MonthlyRate  *int     `json:"monthly_rate" validate:"omitempty,gte=0"`
	Education    []string `json:"education" validate:"omitempty,dive,min=1"`
	About        string   `json:"about" validate:"omitempty,max=2000"`
}
