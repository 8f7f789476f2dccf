// Package models содержит доменные структуры, описывающие публикацию блога,
// а также вспомогательные типы для работы с данными из JSON-запросов.
package models

import "time"

// Post представляет собой публикацию блога.
// Владелец назначается при создании и не меняется, дата создания
// выставляется хранилищем один раз.
type Post struct {
	ID          int64     `json:"id"`          // Уникальный идентификатор публикации
	Title       string    `json:"title"`       // Заголовок, не длиннее 100 символов
	Description string    `json:"description"` // Текст публикации
	CreatedAt   time.Time `json:"created"`     // Дата создания, неизменяемая
	OwnerID     int64     `json:"owner"`       // Идентификатор владельца
}

// DummyPost используется для приёма данных публикации из JSON-запроса,
// прежде чем конвертировать их в Post.
type DummyPost struct {
	Title       string `json:"title" validate:"required,max=100"` // Заголовок (<=100)
	Description string `json:"description" validate:"required"`   // Текст публикации
}
