package leads

import (
	"regexp"
	"strings"

	"leadengine/internal/eligibility"
)

// Submission is a lead form post.
type Submission struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ZipCode      string `json:"zip_code"`
	ServiceType  string `json:"service_type"`
	FormName     string `json:"form_name"`
	FormLocation string `json:"form_location"`
	// Website is a honeypot; people never see it, form-filling bots do.
	Website string `json:"website"`
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate returns every problem with the submission, in form order.
func Validate(sub Submission) []string {
	var problems []string

	if strings.TrimSpace(sub.Website) != "" {
		problems = append(problems, "Honeypot field filled (bot detected)")
	}

	if len([]rune(strings.TrimSpace(sub.Name))) < 2 {
		problems = append(problems, "Name is required (minimum 2 characters)")
	}

	if !emailRegex.MatchString(strings.TrimSpace(sub.Email)) {
		problems = append(problems, "Valid email is required")
	}

	if _, ok := NormalizePhone(sub.Phone); !ok {
		problems = append(problems, "Valid 10-digit phone number is required")
	}

	if _, err := eligibility.ParsePostalCode(sub.ZipCode); err != nil {
		problems = append(problems, eligibility.InvalidPostalCodeMessage)
	}

	return problems
}

// NormalizePhone strips formatting and a leading US country code.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false
	}
	return digits, true
}
