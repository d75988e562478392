package httptransport

import (
	"strings"

	dErrors "leadengine/pkg/domain-errors"
)

const maxFieldLen = 512

// PhoneClickRequest is the body of POST /events/phone-click.
type PhoneClickRequest struct {
	PhoneNumber   string `json:"phone_number"`
	ClickLocation string `json:"click_location"`
}

// Validate implements httputil.Validatable.
func (r *PhoneClickRequest) Validate() error {
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.ClickLocation = strings.TrimSpace(r.ClickLocation)
	if r.PhoneNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "phone_number is required")
	}
	return checkLengths(r.PhoneNumber, r.ClickLocation)
}

// EmailClickRequest is the body of POST /events/email-click.
type EmailClickRequest struct {
	EmailAddress  string `json:"email_address"`
	ClickLocation string `json:"click_location"`
}

// Validate implements httputil.Validatable.
func (r *EmailClickRequest) Validate() error {
	r.EmailAddress = strings.TrimSpace(r.EmailAddress)
	r.ClickLocation = strings.TrimSpace(r.ClickLocation)
	if r.EmailAddress == "" {
		return dErrors.New(dErrors.CodeValidation, "email_address is required")
	}
	return checkLengths(r.EmailAddress, r.ClickLocation)
}

// CTAClickRequest is the body of POST /events/cta-click.
type CTAClickRequest struct {
	Text           string `json:"cta_text"`
	Location       string `json:"cta_location"`
	DestinationURL string `json:"destination_url"`
}

// Validate implements httputil.Validatable.
func (r *CTAClickRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	r.Location = strings.TrimSpace(r.Location)
	r.DestinationURL = strings.TrimSpace(r.DestinationURL)
	if r.Text == "" {
		return dErrors.New(dErrors.CodeValidation, "cta_text is required")
	}
	return checkLengths(r.Text, r.Location, r.DestinationURL)
}

// ErrorEventRequest is the body of POST /events/error, for failures the page
// itself recovered from.
type ErrorEventRequest struct {
	Type     string `json:"error_type"`
	Message  string `json:"error_message"`
	Location string `json:"error_location"`
}

// Validate implements httputil.Validatable.
func (r *ErrorEventRequest) Validate() error {
	r.Type = strings.TrimSpace(r.Type)
	if r.Type == "" {
		return dErrors.New(dErrors.CodeValidation, "error_type is required")
	}
	return checkLengths(r.Type, r.Message, r.Location)
}

// PageViewRequest is the body of POST /pageviews.
type PageViewRequest struct {
	PageType string `json:"page_type"`
	Location string `json:"location"`
}

// Validate implements httputil.Validatable.
func (r *PageViewRequest) Validate() error {
	r.PageType = strings.TrimSpace(r.PageType)
	r.Location = strings.TrimSpace(r.Location)
	if r.PageType == "" {
		return dErrors.New(dErrors.CodeValidation, "page_type is required")
	}
	return checkLengths(r.PageType, r.Location)
}

// ScrollRequest is the body of POST /pageviews/{id}/scroll.
type ScrollRequest struct {
	Percent int `json:"percent"`
}

// InteractionRequest is the body of POST /pageviews/{id}/interactions.
// Count batches several clicks or key presses; zero means one.
type InteractionRequest struct {
	Count int `json:"count"`
}

// Validate implements httputil.Validatable.
func (r *InteractionRequest) Validate() error {
	if r.Count < 0 || r.Count > 1000 {
		return dErrors.New(dErrors.CodeValidation, "count must be between 0 and 1000")
	}
	if r.Count == 0 {
		r.Count = 1
	}
	return nil
}

func checkLengths(fields ...string) error {
	for _, f := range fields {
		if len(f) > maxFieldLen {
			return dErrors.New(dErrors.CodeValidation, "field exceeds maximum length")
		}
	}
	return nil
}
