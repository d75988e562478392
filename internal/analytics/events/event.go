// Package events is the closed catalog of analytics records the engine emits.
// Builders are pure: they describe what happened and leave when and where to
// the emitter.
package events

// Event is a flat record pushed to the tag-manager queue. It always carries
// KeyEvent; the remaining keys are fixed per event kind.
type Event map[string]any

// Name returns the event name, or "" for a malformed record.
func (e Event) Name() string {
	name, _ := e[KeyEvent].(string)
	return name
}

// Clone returns a shallow copy so enrichment never mutates the caller's record.
func (e Event) Clone() Event {
	out := make(Event, len(e)+3)
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Maybe is the result of a gated builder: either an event or nothing.
// Callers must go through Get, so the no-event case cannot be ignored.
type Maybe struct {
	event Event
	ok    bool
}

// Some wraps a built event.
func Some(e Event) Maybe { return Maybe{event: e, ok: true} }

// None is the gated-out result.
func None() Maybe { return Maybe{} }

// Get returns the event and whether there is one.
func (m Maybe) Get() (Event, bool) { return m.event, m.ok }

// IsSome reports whether an event was built.
func (m Maybe) IsSome() bool { return m.ok }

// Event names.
const (
	NameGenerateLead     = "generate_lead"
	NamePhoneClick       = "phone_click"
	NameEmailClick       = "email_click"
	NameCTAClick         = "cta_click"
	NamePageEngagement   = "qualified_page_engagement"
	NameServiceAreaCheck = "service_area_check"
	NameScrollDepth      = "scroll_depth"
	NameErrorTracking    = "error_tracking"
)

// Record keys. Sink-added keys are listed last.
const (
	KeyEvent          = "event"
	KeyValue          = "value"
	KeyCurrency       = "currency"
	KeyConversionType = "conversion_type"

	KeyFormName     = "form_name"
	KeyFormLocation = "form_location"
	KeyServiceType  = "service_type"
	KeyZipCode      = "zip_code"

	KeyPhoneNumber   = "phone_number"
	KeyEmailAddress  = "email_address"
	KeyClickLocation = "click_location"

	KeyCTAText        = "cta_text"
	KeyCTALocation    = "cta_location"
	KeyDestinationURL = "destination_url"
	KeyEngagementType = "engagement_type"

	KeyPageType            = "page_type"
	KeyLocation            = "location"
	KeyTimeOnPage          = "time_on_page"
	KeyScrollDepth         = "scroll_depth"
	KeyInteractions        = "interactions"
	KeyEngagementThreshold = "engagement_threshold"

	KeyAction   = "action"
	KeyResult   = "result"
	KeyWaitTime = "wait_time"

	KeyDepthPercent = "depth_percent"

	KeyErrorType     = "error_type"
	KeyErrorMessage  = "error_message"
	KeyErrorLocation = "error_location"

	KeyTimestamp = "timestamp"
	KeyPageURL   = "page_url"
	KeyPageTitle = "page_title"
)
