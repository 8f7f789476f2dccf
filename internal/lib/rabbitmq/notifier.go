package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// ActivationPublisher публикует задачи на отправку писем активации
// в обменник уведомлений.
type ActivationPublisher struct {
	ch *amqp.Channel
}

// NewActivationPublisher создает новый ActivationPublisher поверх открытого канала.
func NewActivationPublisher(ch *amqp.Channel) *ActivationPublisher {
	return &ActivationPublisher{ch: ch}
}

// NotifyRegistered публикует задачу письма активации для нового пользователя.
func (p *ActivationPublisher) NotifyRegistered(task models.ActivationEmail) error {
	return PublishMessage(p.ch, Exchange, ActivationRoutingKey, task)
}
