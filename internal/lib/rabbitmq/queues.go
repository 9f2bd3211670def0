package rabbitmq

// ExchangeReminders is the direct exchange all maintenance reminders go
// through.
const ExchangeReminders = "reminders"

// Routing keys per reminder severity.
const (
	RoutingKeyOverdue = "overdue"
	RoutingKeySoon    = "soon"
)

// QueueConfig binds one queue to a routing key on the reminders exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// ReminderQueues lists the queues the sender worker consumes.
func ReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminder.overdue", RoutingKey: RoutingKeyOverdue},
		{QueueName: "reminder.soon", RoutingKey: RoutingKeySoon},
	}
}
