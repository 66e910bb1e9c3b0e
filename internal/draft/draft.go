// Package draft caches in-progress wizard state so a dropped session can be
// resumed. Drafts are transient by design: they exist only between the first
// keystroke and a successful submit, and carry no durability guarantees.
package draft

import (
	"context"
	"time"

	"github.com/jonathan/resume-studio/internal/resume"
)

// Draft is the cached wizard state: the accumulated form data, the step the
// user was on, and when it was last written.
type Draft struct {
	FormData    resume.Document `json:"formData"`
	CurrentStep int             `json:"currentStep"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Empty reports whether the draft carries nothing worth restoring: a zero
// draft, or one still on the first step with no content in any section.
func (d Draft) Empty() bool {
	if d.Timestamp.IsZero() {
		return true
	}
	if d.CurrentStep > 0 {
		return false
	}
	doc := d.FormData
	if doc.SectionHasContent(resume.SectionPersonalDetails) {
		return false
	}
	for _, sec := range resume.DefaultOrder() {
		if doc.SectionHasContent(sec) {
			return false
		}
	}
	return true
}

// Store is the injectable draft cache. Get returns ok=false for a missing
// draft; Clear on a missing key is not an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (Draft, bool, error)
	Set(ctx context.Context, sessionID string, d Draft) error
	Clear(ctx context.Context, sessionID string) error
}
