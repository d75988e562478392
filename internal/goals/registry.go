// Package goals is the static conversion-goal table used by attribution
// reporting. Nothing in the engine enforces it; dashboards read it.
package goals

import (
	"slices"

	"leadengine/internal/analytics/events"
)

// Goal names a conversion and the monetary weight reporting assigns to it.
type Goal struct {
	Name        string   `json:"name"`
	EventKinds  []string `json:"event_kinds"`
	Value       float64  `json:"value"`
	Description string   `json:"description"`
}

var registry = []Goal{
	{
		Name:        "Lead Form Submission",
		EventKinds:  []string{events.NameGenerateLead},
		Value:       events.LeadFormValue,
		Description: "Visitor submitted a quote or installation request form",
	},
	{
		Name:        "Phone Call",
		EventKinds:  []string{events.NamePhoneClick},
		Value:       events.PhoneClickValue,
		Description: "Visitor tapped a click-to-call number",
	},
	{
		Name:        "Email Contact",
		EventKinds:  []string{events.NameEmailClick},
		Value:       events.EmailClickValue,
		Description: "Visitor opened an email link",
	},
	{
		Name:        "Service Area Check",
		EventKinds:  []string{events.NameServiceAreaCheck},
		Value:       events.ServiceAreaSubmitValue,
		Description: "Visitor submitted a ZIP code to the availability checker",
	},
	{
		Name:        "Engaged Visit",
		EventKinds:  []string{events.NamePageEngagement, events.NameCTAClick, events.NameScrollDepth},
		Value:       0,
		Description: "Visitor read past the engagement threshold or interacted with a call to action",
	},
}

// All returns a copy of every goal in reporting order.
func All() []Goal {
	out := make([]Goal, len(registry))
	for i, g := range registry {
		out[i] = clone(g)
	}
	return out
}

// ByName looks up a goal by its display name.
func ByName(name string) (Goal, bool) {
	for _, g := range registry {
		if g.Name == name {
			return clone(g), true
		}
	}
	return Goal{}, false
}

// ForEvent returns the goals an event name counts toward.
func ForEvent(eventName string) []Goal {
	out := []Goal{}
	for _, g := range registry {
		if slices.Contains(g.EventKinds, eventName) {
			out = append(out, clone(g))
		}
	}
	return out
}

func clone(g Goal) Goal {
	g.EventKinds = slices.Clone(g.EventKinds)
	return g
}
