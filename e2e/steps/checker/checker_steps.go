package checker

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

// RegisterSteps registers ZIP code checker step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &checkerSteps{tc: tc}

	ctx.Step(`^I check ZIP code "([^"]*)"$`, steps.checkZip)
	ctx.Step(`^my recent lookups should be "([^"]*)"$`, steps.recentShouldBe)
}

type checkerSteps struct {
	tc TestContext
}

func (s *checkerSteps) checkZip(ctx context.Context, zip string) error {
	return s.tc.POST("/eligibility/check", map[string]interface{}{
		"zip_code": zip,
	})
}

func (s *checkerSteps) recentShouldBe(ctx context.Context, expected string) error {
	if err := s.tc.GET("/lookups/recent", nil); err != nil {
		return err
	}
	v, err := s.tc.GetResponseField("recent")
	if err != nil {
		return err
	}
	list, ok := v.([]interface{})
	if !ok {
		return fmt.Errorf("recent is not a list: %v", v)
	}
	got := ""
	for i, item := range list {
		if i > 0 {
			got += ","
		}
		got += fmt.Sprint(item)
	}
	if got != expected {
		return fmt.Errorf("expected recent lookups %q, got %q", expected, got)
	}
	return nil
}
