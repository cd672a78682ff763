package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EnrollmentConfirmationEmailData holds data for the enrollment confirmation email.
type EnrollmentConfirmationEmailData struct {
	Email            string
	Name             string
	EventTitle       string
	ConfirmationCode string
}

// WaitlistPromotionEmailData holds data for the waitlist promotion email.
type WaitlistPromotionEmailData struct {
	Email            string
	Name             string
	EventTitle       string
	ConfirmationCode string
}

// EmailService defines the contract for sending domain-level emails.
// Delivery is best-effort: the write path records intent (the waitlist entry's
// notified flag) and never fails on a send error.
type EmailService interface {
	SendEnrollmentConfirmation(ctx context.Context, data *EnrollmentConfirmationEmailData) error
	SendWaitlistPromotion(ctx context.Context, data *WaitlistPromotionEmailData) error
}
