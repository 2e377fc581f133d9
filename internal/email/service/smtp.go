package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/google/uuid"

	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	edomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/email/domain"
	sdomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/settings/domain"
)

// Ensure SMTP implements domain.Transport
var _ edomain.Transport = (*SMTP)(nil)

type SMTP struct {
	cfg      config.Config
	settings sdomain.Service
}

func NewSMTP(settings sdomain.Service, cfg config.Config) *SMTP {
	return &SMTP{settings: settings, cfg: cfg}
}

func (s *SMTP) Send(ctx context.Context, companyID uuid.UUID, msg edomain.Message) (edomain.Result, error) {
	host, _ := s.settings.GetString(ctx, sdomain.KeySMTPHost, &companyID, s.cfg.SMTPHost)
	username, _ := s.settings.GetString(ctx, sdomain.KeySMTPUsername, &companyID, s.cfg.SMTPUsername)
	password, _ := s.settings.GetString(ctx, sdomain.KeySMTPPassword, &companyID, s.cfg.SMTPPassword)
	portStr, _ := s.settings.GetString(ctx, sdomain.KeySMTPPort, &companyID, fmt.Sprintf("%d", s.cfg.SMTPPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = s.cfg.SMTPPort
	}

	from := msg.From
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, msg.From)
	}
	contentType := "text/plain"
	body := msg.Text
	if msg.HTML != "" {
		contentType = "text/html"
		body = msg.HTML
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	raw := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s; charset=utf-8\r\n\r\n%s\r\n",
		from, msg.To, msg.Subject, contentType, body))
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	if err := smtp.SendMail(addr, auth, msg.From, []string{msg.To}, raw); err != nil {
		return edomain.Result{}, err
	}
	// SMTP has no provider message id; synthesize one for the audit trail.
	return edomain.Result{MessageID: "smtp-" + uuid.NewString()}, nil
}
