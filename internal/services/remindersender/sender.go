// Package services отправляет письма-напоминания о предстоящих собеседованиях.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/job-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/job-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// InterviewRepository описывает пометку собеседования как обработанного.
type InterviewRepository interface {
	MarkReminderSent(ctx context.Context, id int64) error
}

type SenderService struct {
	transport smtp.TransportInterface
	repo      InterviewRepository
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface, repo InterviewRepository) *SenderService {
	return &SenderService{
		transport: transport,
		repo:      repo,
		log:       log,
	}
}

// SendInterviewReminder отправляет письмо по сообщению очереди напоминаний
// и помечает собеседование после успешной отправки. Пока пометки нет,
// планировщик публикует напоминание заново на каждом тике, поэтому
// неудавшаяся отправка письмо не теряет.
func (s *SenderService) SendInterviewReminder(body []byte) error {
	var message models.ReminderInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Напоминание о предстоящем собеседовании"
	bodyText := fmt.Sprintf(
		"Здравствуйте, %s!\n\nЗавтра, %s, у вас собеседование в компанию %s на позицию %s.\n\nУдачи!",
		message.FullName,
		message.ScheduledAt.Format("02.01.2006 15:04"),
		message.Company,
		message.Position)

	if err := s.sendEmail(to, subject, bodyText); err != nil {
		return err
	}

	// Ошибка пометки возвращает сообщение в очередь: повторное письмо
	// лучше потерянного напоминания.
	if err := s.repo.MarkReminderSent(context.Background(), message.InterviewID); err != nil {
		s.log.Error("failed to mark reminder as sent", sl.Err(err))
		return err
	}
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
