package models

import "time"

// Interview представляет собеседование по отклику.
// Собственного поля владельца нет: владелец определяется через
// родительский Application, поле OwnerID заполняется запросом с JOIN
// и в таблице interviews не хранится.
type Interview struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Kind          string    `json:"kind"`
	Location      string    `json:"location,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	ReminderSent  bool      `json:"-"`

	OwnerID int64 `json:"-"`
}

// DummyInterview — входные данные собеседования из HTTP-запроса.
type DummyInterview struct {
	ApplicationID int64  `json:"application_id" validate:"required,gt=0"`
	ScheduledAt   string `json:"scheduled_at" validate:"required"`
	Kind          string `json:"kind" validate:"required,oneof=PHONE VIDEO ONSITE TECHNICAL HR"`
	Location      string `json:"location" validate:"omitempty,max=500"`
	Notes         string `json:"notes" validate:"omitempty,max=5000"`
}

// ReminderInfo — сообщение очереди напоминаний о собеседовании.
type ReminderInfo struct {
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	InterviewID int64     `json:"interview_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}
