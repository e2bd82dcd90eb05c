package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pastor-mobile/church-admin-service/internal/events"
	"github.com/pastor-mobile/church-admin-service/internal/mail"
)

// NotificationService renders account emails for domain events and hands them
// to the mailer. Delivery is best-effort and never fails the triggering
// request.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAdminSignedUp, n.handleAdminSignedUp)
	n.dispatcher.Subscribe(events.EventOTPIssued, n.handleOTPIssued)
	n.dispatcher.Subscribe(events.EventCredentialsIssued, n.handleCredentialsIssued)
}

func (n *NotificationService) handleAdminSignedUp(_ context.Context, event events.Event) error {
	code, _ := event.Payload["otp_code"].(string)
	minutes, _ := event.Payload["validity_minutes"].(int)

	n.logger.Info("AdminSignedUp", zap.String("email", event.Email))
	n.mailer.Send(mail.Message{
		To:      event.Email,
		Subject: "Admin Account Verification - OTP Code",
		Body: fmt.Sprintf(
			"Welcome! Your admin account has been created.\n\n"+
				"Your OTP code is: %s\n\n"+
				"This code will expire in %d minutes.\n\n"+
				"Please verify your account using this OTP code.",
			code, minutes),
	})
	return nil
}

func (n *NotificationService) handleOTPIssued(_ context.Context, event events.Event) error {
	code, _ := event.Payload["otp_code"].(string)
	minutes, _ := event.Payload["validity_minutes"].(int)
	purpose, _ := event.Payload["purpose"].(string)

	n.logger.Info("OTPIssued", zap.String("email", event.Email), zap.String("purpose", purpose))

	var subject, body string
	if purpose == "password_reset" {
		subject = "Password Reset - OTP Code"
		body = fmt.Sprintf(
			"You requested to reset your password.\n\n"+
				"Your OTP code is: %s\n\n"+
				"This code will expire in %d minutes.\n\n"+
				"If you didn't request this, please ignore this email.",
			code, minutes)
	} else {
		subject = "OTP Code - Account Verification"
		body = fmt.Sprintf(
			"Your OTP code is: %s\n\n"+
				"This code will expire in %d minutes.\n\n"+
				"Please use this code to verify your account.",
			code, minutes)
	}

	n.mailer.Send(mail.Message{To: event.Email, Subject: subject, Body: body})
	return nil
}

func (n *NotificationService) handleCredentialsIssued(_ context.Context, event events.Event) error {
	password, _ := event.Payload["password"].(string)
	firstName, _ := event.Payload["first_name"].(string)
	lastName, _ := event.Payload["last_name"].(string)
	roleName, _ := event.Payload["role_name"].(string)

	n.logger.Info("CredentialsIssued", zap.String("email", event.Email), zap.String("role", roleName))
	n.mailer.Send(mail.Message{
		To:      event.Email,
		Subject: fmt.Sprintf("Your %s Account Credentials", roleName),
		Body: fmt.Sprintf(
			"Hello %s %s,\n\n"+
				"Your %s account has been created.\n\n"+
				"You can sign in using:\n\n"+
				"Email: %s\n"+
				"Password: %s\n"+
				"Role: %s\n\n"+
				"Please keep these credentials secure and change your password after first login.",
			firstName, lastName, roleName, event.Email, password, roleName),
	})
	return nil
}
