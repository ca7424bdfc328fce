// Package mail отвечает за доставку одноразовых кодов подтверждения email.
// Почтовый транспорт для системы внешний: креденшалы приходят из окружения,
// а сам SMTP сервер считается непрозрачным коллаборатором.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

//go:generate moq -out mailer_mock.go . Sender

// Sender определяет интерфейс доставки OTP кодов
type Sender interface {
	// SendOTP отправляет одноразовый код на указанный email
	SendOTP(ctx context.Context, email, code string) error
}

// SMTPConfig содержит конфигурацию SMTP транспорта
type SMTPConfig struct {
	Host     string // например smtp.gmail.com
	Port     string // например 587
	Username string
	Password string
	From     string // адрес отправителя
}

// SMTPSender отправляет письма через SMTP с PLAIN авторизацией
type SMTPSender struct {
	logger *slog.Logger
	cfg    SMTPConfig
}

// NewSMTPSender creates a new SMTP-backed sender
func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendOTP отправляет одноразовый код на указанный email
func (s *SMTPSender) SendOTP(ctx context.Context, email, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your MR BikeModz verification code\r\n\r\n"+
			"Your one-time verification code is: %s\r\n\r\n"+
			"The code expires in 10 minutes. If you did not request it, ignore this email.\r\n",
		s.cfg.From, email, code)

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}

	s.logger.InfoContext(ctx, "otp mail sent", slog.String("email", email))
	return nil
}

// LogSender пишет код в лог вместо отправки письма.
// Используется в разработке, когда SMTP креденшалы не заданы.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs codes
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendOTP логирует код вместо отправки
func (s *LogSender) SendOTP(ctx context.Context, email, code string) error {
	s.logger.InfoContext(ctx, "otp code (mail transport disabled)",
		slog.String("email", email),
		slog.String("code", code))
	return nil
}
