// Package models содержит доменные структуры маркетплейса репетиторов:
// пользователей, профили репетиторов, заявки на обучение и бронирования,
// а также вспомогательные Dummy-типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы.
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// User представляет зарегистрированного пользователя системы.
// Пользователи никогда не удаляются физически: администратор может
// только выставить флаг IsBlocked.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Имя
	Email        string    // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash string    `json:"-"` // Хэш пароля, наружу не отдается
	Role         string    // Роль: student, tutor или admin
	PhoneNumber  string    // Телефон
	Address      string    // Адрес (город/район)
	GradeLevel   string    // Класс обучения (для студентов)
	IsActive     bool      // Признак активной учетной записи
	IsBlocked    bool      // Признак блокировки администратором
	CreatedAt    time.Time // Дата регистрации
}

// UserSummary — краткая карточка пользователя для отображения
// в списках заявок и бронирований (явный read-side join).
type UserSummary struct {
	UID   string
	Name  string
	Email string
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof=student tutor admin"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
	Address     string `json:"address" validate:"omitempty,max=200"`
	GradeLevel  string `json:"grade_level" validate:"omitempty,max=50"`
}

// DummyLogin используется для приёма учетных данных при входе.
// Role опциональна: если указана, вход разрешен только при совпадении ролей.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=student tutor admin"`
}

// DummyUserUpdate — частичное обновление собственного профиля пользователя.
// Обновлять разрешено только перечисленные поля.
type DummyUserUpdate struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
	Address     string `json:"address" validate:"omitempty,max=200"`
}
