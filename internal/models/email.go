// Package models содержит структуру задачи на отправку письма активации,
// публикуемой в RabbitMQ при регистрации пользователя.
package models

// ActivationEmail задача для воркера отправки писем.
// MessageID используется для отслеживания доставки в логах.
type ActivationEmail struct {
	MessageID    string `json:"message_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	ActivateLink string `json:"activate_link"`
}
