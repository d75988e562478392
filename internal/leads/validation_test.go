package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		want   []string
	}{
		{name: "valid", mutate: func(*Submission) {}},
		{
			name:   "short name",
			mutate: func(s *Submission) { s.Name = " A " },
			want:   []string{"Name is required (minimum 2 characters)"},
		},
		{
			name:   "bad email",
			mutate: func(s *Submission) { s.Email = "dana@example" },
			want:   []string{"Valid email is required"},
		},
		{
			name:   "short phone",
			mutate: func(s *Submission) { s.Phone = "555-0142" },
			want:   []string{"Valid 10-digit phone number is required"},
		},
		{
			name:   "bad zip",
			mutate: func(s *Submission) { s.ZipCode = "2203" },
			want:   []string{"Please enter a valid 5-digit ZIP code"},
		},
		{
			name:   "honeypot",
			mutate: func(s *Submission) { s.Website = "http://spam.example" },
			want:   []string{"Honeypot field filled (bot detected)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)
			assert.Equal(t, tt.want, Validate(sub))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	got, ok := NormalizePhone("+1 (703) 555-0142")
	assert.True(t, ok)
	assert.Equal(t, "7035550142", got)

	_, ok = NormalizePhone("703-555")
	assert.False(t, ok)
}

func TestRedaction(t *testing.T) {
	assert.Equal(t, "d***@example.com", redactEmail("dana@example.com"))
	assert.Equal(t, "[redacted]", redactEmail("dana"))
	assert.Equal(t, "***@example.com", redactEmail("@example.com"))
	assert.Equal(t, "D***", redactName("Dana"))
	assert.Empty(t, redactName("  "))
}
