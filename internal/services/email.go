package services

import (
	"fmt"

	"go.uber.org/zap"
)

// EmailService is a placeholder for a real email sending service.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendPasswordReset delivers the reset link out-of-band. The stored
// credential itself is never sent anywhere.
func (s *EmailService) SendPasswordReset(email, resetURL string) {
	s.log.Info("Sending password reset email",
		zap.String("to", email),
	)
	// TODO: wire a real SMTP client here once credentials exist; until
	// then the link goes to stdout so local flows stay testable.
	fmt.Printf("--- SIMULATING EMAIL ---\nTo: %s\nSubject: Restablece tu contraseña de PREPARICFES\nAbre este enlace para elegir una contraseña nueva (expira en 30 minutos):\n%s\n\n", email, resetURL)
}
