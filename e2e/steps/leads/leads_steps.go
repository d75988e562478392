package leads

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
}

// RegisterSteps registers lead capture and lifecycle step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &leadSteps{tc: tc}

	ctx.Step(`^I submit a lead as "([^"]*)" with email "([^"]*)" and phone "([^"]*)" in ZIP "([^"]*)"$`, steps.submitLead)
	ctx.Step(`^a bot submits a lead with the honeypot filled$`, steps.submitHoneypot)
	ctx.Step(`^I become customer "([^"]*)"$`, steps.convert)
	ctx.Step(`^my lifecycle stage should be "([^"]*)"$`, steps.stageShouldBe)
}

type leadSteps struct {
	tc TestContext
}

func (s *leadSteps) submitLead(ctx context.Context, name, email, phone, zip string) error {
	return s.tc.POST("/leads", map[string]interface{}{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"zip_code": zip,
	})
}

func (s *leadSteps) submitHoneypot(ctx context.Context) error {
	return s.tc.POST("/leads", map[string]interface{}{
		"name":     "Robot",
		"email":    "bot@example.com",
		"phone":    "5555555555",
		"zip_code": "22030",
		"website":  "http://spam.example.com",
	})
}

func (s *leadSteps) convert(ctx context.Context, customerID string) error {
	return s.tc.POST("/customers", map[string]interface{}{
		"customer_id": customerID,
	})
}

func (s *leadSteps) stageShouldBe(ctx context.Context, expected string) error {
	if err := s.tc.GET("/lifecycle", nil); err != nil {
		return err
	}
	v, err := s.tc.GetResponseField("stage")
	if err != nil {
		return err
	}
	if fmt.Sprint(v) != expected {
		return fmt.Errorf("expected stage %q, got %q", expected, v)
	}
	return nil
}
