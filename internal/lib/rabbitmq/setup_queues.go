package rabbitmq

// QueueConfig связывает очередь с ключом маршрутизации в обменнике.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Имена очередей и ключи маршрутизации писем активации.
const (
	ActivationQueue      = "account_activation_queue"
	ActivationRoutingKey = "account.activation"
)

// GetNotificationQueues возвращает очереди, которые обслуживает воркер отправки писем.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ActivationQueue, RoutingKey: ActivationRoutingKey},
	}
}
