package rabbitmq

// ExchangeReminders — exchange для событий напоминаний.
const ExchangeReminders = "reminders"

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminder.upcoming", RoutingKey: "upcoming"},
	}
}
