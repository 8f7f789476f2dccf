// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, флаги активации и роли.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей, хранящиеся в поле User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     // Уникальный числовой идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или user
	IsActive     bool      // Признак активированной учётной записи
	RegisteredAt time.Time // Дата регистрации
}

// IsAdmin сообщает, имеет ли пользователь роль администратора.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserInfo сокращённое представление пользователя для публичных списков.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserProfile полное представление пользователя, возвращаемое
// владельцу учётной записи и администраторам.
type UserProfile struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	RegisteredAt  time.Time `json:"registered_at"`
	IsActive      bool      `json:"is_active"`
	IsAdmin       bool      `json:"is_admin"`
	Subscriptions []int64   `json:"subscriptions"` // ID пользователей, на которых оформлена подписка
}

// DummyUser используется для приёма данных пользователя из JSON-запроса
// администратора, прежде чем конвертировать их в User.
type DummyUser struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	IsActive bool   `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}
