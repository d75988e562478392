package e2e

import (
	"github.com/cucumber/godog"

	"leadengine/e2e/steps/checker"
	"leadengine/e2e/steps/common"
	"leadengine/e2e/steps/leads"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and assertions
	common.RegisterSteps(ctx, tc)

	// ZIP code availability checker
	checker.RegisterSteps(ctx, tc)

	// Lead capture and lifecycle
	leads.RegisterSteps(ctx, tc)
}
