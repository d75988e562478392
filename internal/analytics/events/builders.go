package events

// Currency is attached to every event that carries a conversion value.
const Currency = "USD"

// Default conversion values.
const (
	LeadFormValue          = 100.0
	PhoneClickValue        = 75.0
	EmailClickValue        = 25.0
	ServiceAreaSubmitValue = 50.0
	ServiceAreaStepValue   = 10.0
)

// Engagement quality thresholds, in seconds on page. The time must exceed
// the threshold, not merely reach it.
const (
	LocationPageThreshold = 120
	DefaultPageThreshold  = 60
)

// PageTypeLocation marks per-city landing pages, which need longer dwell time
// before a visit counts as engaged.
const PageTypeLocation = "location"

// ScrollMilestones are the only depths that produce scroll events.
var ScrollMilestones = [...]int{25, 50, 75, 100}

// LeadFormInput describes a completed lead form. Zero Value means the default.
type LeadFormInput struct {
	FormName     string
	FormLocation string
	ServiceType  string
	ZipCode      string
	Value        float64
}

// LeadFormSubmit is the primary conversion.
func LeadFormSubmit(in LeadFormInput) Event {
	return Event{
		KeyEvent:          NameGenerateLead,
		KeyFormName:       in.FormName,
		KeyFormLocation:   in.FormLocation,
		KeyServiceType:    in.ServiceType,
		KeyZipCode:        in.ZipCode,
		KeyConversionType: "primary",
		KeyCurrency:       Currency,
		KeyValue:          valueOr(in.Value, LeadFormValue),
	}
}

// PhoneClickInput describes a tap on a tel: link.
type PhoneClickInput struct {
	PhoneNumber   string
	ClickLocation string
	Value         float64
}

// PhoneClick is the secondary conversion.
func PhoneClick(in PhoneClickInput) Event {
	return Event{
		KeyEvent:          NamePhoneClick,
		KeyPhoneNumber:    in.PhoneNumber,
		KeyClickLocation:  in.ClickLocation,
		KeyConversionType: "secondary",
		KeyCurrency:       Currency,
		KeyValue:          valueOr(in.Value, PhoneClickValue),
	}
}

// EmailClickInput describes a click on a mailto: link.
type EmailClickInput struct {
	EmailAddress  string
	ClickLocation string
}

// EmailClick is a micro conversion with a fixed value.
func EmailClick(in EmailClickInput) Event {
	return Event{
		KeyEvent:          NameEmailClick,
		KeyEmailAddress:   in.EmailAddress,
		KeyClickLocation:  in.ClickLocation,
		KeyConversionType: "micro",
		KeyCurrency:       Currency,
		KeyValue:          EmailClickValue,
	}
}

// CTAClickInput describes a call-to-action button click.
type CTAClickInput struct {
	Text           string
	Location       string
	DestinationURL string
}

// CTAClick is an engagement signal without a monetary value.
func CTAClick(in CTAClickInput) Event {
	return Event{
		KeyEvent:          NameCTAClick,
		KeyCTAText:        in.Text,
		KeyCTALocation:    in.Location,
		KeyDestinationURL: in.DestinationURL,
		KeyEngagementType: "cta",
	}
}

// PageEngagementInput summarizes one page view at teardown.
type PageEngagementInput struct {
	PageType     string
	Location     string
	TimeSpent    int // whole seconds
	ScrollDepth  int // max percent reached
	Interactions int
}

// EngagementThreshold returns the dwell time a page type must exceed.
func EngagementThreshold(pageType string) int {
	if pageType == PageTypeLocation {
		return LocationPageThreshold
	}
	return DefaultPageThreshold
}

// PageEngagement is gated on dwell time exceeding the page type's threshold.
func PageEngagement(in PageEngagementInput) Maybe {
	threshold := EngagementThreshold(in.PageType)
	if in.TimeSpent <= threshold {
		return None()
	}
	return Some(Event{
		KeyEvent:               NamePageEngagement,
		KeyPageType:            in.PageType,
		KeyLocation:            in.Location,
		KeyTimeOnPage:          in.TimeSpent,
		KeyScrollDepth:         in.ScrollDepth,
		KeyInteractions:        in.Interactions,
		KeyEngagementThreshold: threshold,
	})
}

// CheckAction is a step of the service-area funnel.
type CheckAction string

const (
	CheckStart      CheckAction = "start"
	CheckSubmit     CheckAction = "submit"
	CheckResultView CheckAction = "result_view"
)

// Outcomes of a service-area check.
const (
	ResultAvailable = "available"
	ResultWaitlist  = "waitlist"
)

// ServiceAreaCheckInput describes one funnel step. Result and WaitTime are
// empty for the start step.
type ServiceAreaCheckInput struct {
	Action   CheckAction
	ZipCode  string
	Result   string
	WaitTime string
}

// ServiceAreaCheck records a step of the ZIP checker funnel. Submit carries the
// higher value because it is the step that qualifies intent.
func ServiceAreaCheck(in ServiceAreaCheckInput) Event {
	value := ServiceAreaStepValue
	if in.Action == CheckSubmit {
		value = ServiceAreaSubmitValue
	}
	e := Event{
		KeyEvent:   NameServiceAreaCheck,
		KeyAction:  string(in.Action),
		KeyZipCode: in.ZipCode,
		KeyValue:   value,
	}
	if in.Result != "" {
		e[KeyResult] = in.Result
	}
	if in.WaitTime != "" {
		e[KeyWaitTime] = in.WaitTime
	}
	return e
}

// ScrollDepthInput is a depth reached on a page.
type ScrollDepthInput struct {
	Percent  int
	PageType string
	Location string
}

// IsScrollMilestone reports whether percent is exactly a milestone.
func IsScrollMilestone(percent int) bool {
	for _, m := range ScrollMilestones {
		if percent == m {
			return true
		}
	}
	return false
}

// ScrollDepth is gated to the exact milestone percentages.
func ScrollDepth(in ScrollDepthInput) Maybe {
	if !IsScrollMilestone(in.Percent) {
		return None()
	}
	return Some(Event{
		KeyEvent:        NameScrollDepth,
		KeyDepthPercent: in.Percent,
		KeyPageType:     in.PageType,
		KeyLocation:     in.Location,
	})
}

// ErrorInput describes a recoverable failure worth tracking.
type ErrorInput struct {
	Type     string
	Message  string
	Location string
}

// ErrorTracking is the generic error event.
func ErrorTracking(in ErrorInput) Event {
	return Event{
		KeyEvent:         NameErrorTracking,
		KeyErrorType:     in.Type,
		KeyErrorMessage:  in.Message,
		KeyErrorLocation: in.Location,
	}
}

func valueOr(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
