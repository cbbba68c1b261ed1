package models

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (m *ContactMessage) Validate() error {
	var errs []error
	if utf8.RuneCountInString(strings.TrimSpace(m.Name)) < 2 {
		errs = append(errs, errors.New("Name must be at least 2 characters."))
	}
	if addr, err := mail.ParseAddress(m.Email); err != nil || addr.Address != m.Email {
		errs = append(errs, errors.New("Invalid email address."))
	}
	if m.Subject != "" && utf8.RuneCountInString(m.Subject) < 5 {
		errs = append(errs, errors.New("Subject must be at least 5 characters."))
	}
	if utf8.RuneCountInString(m.Message) < 10 {
		errs = append(errs, errors.New("Message must be at least 10 characters."))
	}
	return errors.Join(errs...)
}

// Params is the template_params payload for the mail service.
func (m *ContactMessage) Params() map[string]string {
	params := map[string]string{
		"name":    m.Name,
		"email":   m.Email,
		"message": m.Message,
	}
	if m.Subject != "" {
		params["subject"] = m.Subject
	}
	return params
}
