package application

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"
)

var (
	smtpServer     = envOrDefault("SMTP_SERVER", "smtp.office365.com")
	smtpServerPort = envIntOrDefault("SMTP_PORT", 587)
	smtpEmail      = os.Getenv("SMTP_AUTH_MAIL")
	smtpPassword   = os.Getenv("SMTP_AUTH_PASSWORD")
)

// MailService delivers best-effort notification mail. Callers fire it from
// goroutines; a delivery failure is logged and must never fail the operation
// that triggered it.
type MailService struct {
	logger *logrus.Logger
	cb     *gobreaker.CircuitBreaker
}

func NewMailService(logger *logrus.Logger) *MailService {
	return &MailService{
		logger: logger,
		cb:     CircuitBreaker("mailService"),
	}
}

func (service *MailService) SendWelcome(email, name string) error {
	body := fmt.Sprintf("Dear %s,\n\nWelcome to RealEstateHelper! We are excited to have you on board.\n\n"+
		"You can now explore properties, contact sellers, or list your own properties (if you are a seller).\n\n"+
		"Best Regards,\nRealEstateHelper Team", name)
	return service.send(email, "Welcome to RealEstateHelper!", body)
}

func (service *MailService) SendOtp(email, name, otp string) error {
	body := fmt.Sprintf("Dear %s,\n\nYour verification code is: %s\n\n"+
		"It expires in 10 minutes.\n\nBest Regards,\nRealEstateHelper Team", name, otp)
	return service.send(email, "Verify your RealEstateHelper account", body)
}

func (service *MailService) SendPropertySubmitted(email, name, title string) error {
	body := fmt.Sprintf("Dear %s,\n\nYour property '%s' has been successfully submitted.\n"+
		"It is currently 'PENDING' approval from our admin team. You will be notified once it is approved or rejected.\n\n"+
		"Best Regards,\nRealEstateHelper Team", name, title)
	return service.send(email, "Property Listed Successfully - Pending Approval", body)
}

func (service *MailService) SendPropertyStatus(email, name, title, status, reason string) error {
	body := fmt.Sprintf("Dear %s,\n\nYour property '%s' status has been updated to: %s.\n\n", name, title, status)
	if status == "REJECTED" {
		if reason == "" {
			reason = "Not specified"
		}
		body += fmt.Sprintf("Reason for Rejection: %s\n\nPlease edit your property details and resubmit for approval.\n\n", reason)
	} else if status == "APPROVED" {
		body += "Your property is now live on our platform!\n\n"
	}
	body += "Best Regards,\nRealEstateHelper Team"
	return service.send(email, "Property Status Update: "+title, body)
}

func (service *MailService) send(to, subject, body string) error {
	_, err := service.cb.Execute(func() (interface{}, error) {
		message := gomail.NewMessage()
		message.SetHeader("From", smtpEmail)
		message.SetHeader("To", to)
		message.SetHeader("Subject", subject)
		message.SetBody("text", body)

		client := gomail.NewDialer(smtpServer, smtpServerPort, smtpEmail, smtpPassword)
		return nil, client.DialAndSend(message)
	})
	if err != nil {
		service.logger.Errorf("failed to send mail to %s: %s", to, err)
		return err
	}
	return nil
}

func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
		},
	)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
