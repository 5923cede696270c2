// Package services находит собеседования на ближайшие сутки и публикует
// напоминания о них в очередь RabbitMQ.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/job-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/job-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

type InterviewRepository interface {
	FindInterviewsDueSoon(ctx context.Context) ([]*models.ReminderInfo, error)
}

type SchedulerService struct {
	repo InterviewRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo InterviewRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindUpcomingInterviews периодически ищет собеседования, назначенные в
// ближайшие сутки, и публикует по ним напоминания.
func (s *SchedulerService) FindUpcomingInterviews(ctx context.Context, channel *amqp.Channel) {
	s.runFindUpcomingInterviews(ctx, channel)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindUpcomingInterviews(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindUpcomingInterviews(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find upcoming interviews")
	reminders, err := s.repo.FindInterviewsDueSoon(ctx)
	if err != nil {
		s.log.Error("failed to find interviews", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no upcoming interviews found")
		return
	}
	s.log.Info("found upcoming interviews", "count", len(reminders))
	for _, reminder := range reminders {
		// reminder_sent ставит отправитель после успешной отправки письма,
		// поэтому неотправленное напоминание попадёт и в следующий тик.
		err = rabbitmq.PublishMessage(channel, rabbitmq.ExchangeReminders, "upcoming", reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
