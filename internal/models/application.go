package models

import "time"

// Статусы отклика на вакансию.
const (
	StatusApplied   = "APPLIED"
	StatusScreening = "SCREENING"
	StatusInterview = "INTERVIEW"
	StatusOffer     = "OFFER"
	StatusRejected  = "REJECTED"
	StatusAccepted  = "ACCEPTED"
)

// Application представляет отклик пользователя на вакансию.
// Владелец фиксируется в UserID при создании и далее не меняется.
type Application struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Status      string    `json:"status"`
	JobLink     string    `json:"job_link,omitempty"`
	AppliedDate time.Time `json:"applied_date"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DummyApplication — входные данные отклика из HTTP-запроса.
type DummyApplication struct {
	Company     string `json:"company" validate:"required,min=1,max=200"`
	Position    string `json:"position" validate:"required,min=1,max=200"`
	Status      string `json:"status" validate:"omitempty,oneof=APPLIED SCREENING INTERVIEW OFFER REJECTED ACCEPTED"`
	JobLink     string `json:"job_link" validate:"omitempty,max=2000"`
	AppliedDate string `json:"applied_date" validate:"required,datetime=02-01-2006"`
	Notes       string `json:"notes" validate:"omitempty,max=5000"`
}

// StatusCount — количество откликов в одном статусе,
// источник данных для диаграммы на дашборде.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
