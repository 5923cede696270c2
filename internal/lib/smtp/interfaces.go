// Package smtp отправляет письма-напоминания о собеседованиях.
package smtp

import "io"

// Client — минимальный набор операций SMTP-сессии, который нужен
// отправителю напоминаний. Покрывает *smtp.Client из стандартной
// библиотеки и подменяется моком в тестах.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает SMTP-сессию и знает адрес отправителя.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
