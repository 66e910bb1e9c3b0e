package wizard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-studio/internal/draft"
	"github.com/jonathan/resume-studio/internal/resume"
)

// Saver persists a finished resume document.
type Saver interface {
	CreateResume(ctx context.Context, userID, resumeID string, doc resume.Document) error
}

// Session is the in-progress state of one builder run. It is cheap to copy;
// transitions return the updated session rather than mutating the receiver.
type Session struct {
	ID   string
	Step Step
	Doc  resume.Document
}

// Wizard owns step transitions and draft persistence for builder sessions.
type Wizard struct {
	drafts draft.Store
	saver  Saver
	now    func() time.Time
}

// New builds a wizard over the given draft store and document saver.
func New(drafts draft.Store, saver Saver) *Wizard {
	return &Wizard{drafts: drafts, saver: saver, now: time.Now}
}

// Start opens a session, restoring a saved draft when one exists. The second
// return reports whether anything was restored.
func (w *Wizard) Start(ctx context.Context, sessionID string) (Session, bool, error) {
	sess := Session{ID: sessionID, Step: StepPersonalInfo, Doc: resume.NewDocument()}

	d, ok, err := w.drafts.Get(ctx, sessionID)
	if err != nil {
		return Session{}, false, fmt.Errorf("loading draft: %w", err)
	}
	if !ok || d.Empty() {
		return sess, false, nil
	}

	sess.Doc = d.FormData
	if d.CurrentStep >= 0 && d.CurrentStep < StepCount() {
		sess.Step = Step(d.CurrentStep)
	}
	log.Printf("restored draft for session %s at step %q", sessionID, sess.Step)
	return sess, true, nil
}

// UpdateField applies one field edit and persists the draft.
func (w *Wizard) UpdateField(ctx context.Context, sess Session, ref resume.FieldRef, value string) (Session, error) {
	doc, err := sess.Doc.UpdateField(ref, value)
	if err != nil {
		return sess, err
	}
	sess.Doc = doc
	if err := w.saveDraft(ctx, sess); err != nil {
		return sess, err
	}
	return sess, nil
}

// Next validates the current step and advances when it passes. Validation
// failures come back as ValidationErrors with the session unchanged.
func (w *Wizard) Next(ctx context.Context, sess Session) (Session, error) {
	if errs := ValidateStep(sess.Step, sess.Doc); len(errs) > 0 {
		return sess, errs
	}
	if sess.Step < LastStep() {
		sess.Step++
	}
	if err := w.saveDraft(ctx, sess); err != nil {
		return sess, err
	}
	return sess, nil
}

// Previous steps back without validating; earlier steps were already checked
// on the way forward and may be freely revisited.
func (w *Wizard) Previous(ctx context.Context, sess Session) (Session, error) {
	if sess.Step > StepPersonalInfo {
		sess.Step--
	}
	if err := w.saveDraft(ctx, sess); err != nil {
		return sess, err
	}
	return sess, nil
}

// Submit validates every step, saves the document under a fresh id, and
// clears the draft. On a store failure the draft is left intact so nothing
// typed is lost. The new resume id is returned.
func (w *Wizard) Submit(ctx context.Context, sess Session, userID string) (string, error) {
	var all ValidationErrors
	for s := StepPersonalInfo; s <= LastStep(); s++ {
		all = append(all, ValidateStep(s, sess.Doc)...)
	}
	if len(all) > 0 {
		return "", all
	}

	resumeID := fmt.Sprintf("resume_%d", w.now().UnixMilli())
	doc := sess.Doc
	doc.UpdatedAt = w.now().UTC().Format(time.RFC3339)
	if doc.CreatedAt == "" {
		doc.CreatedAt = doc.UpdatedAt
	}

	if err := w.saver.CreateResume(ctx, userID, resumeID, doc); err != nil {
		return "", fmt.Errorf("saving resume: %w", err)
	}
	if err := w.drafts.Clear(ctx, sess.ID); err != nil {
		// the resume is saved; a stale draft is an annoyance, not a failure
		log.Printf("clearing draft for session %s: %v", sess.ID, err)
	}
	log.Printf("session %s submitted resume %s for user %s", sess.ID, resumeID, userID)
	return resumeID, nil
}

func (w *Wizard) saveDraft(ctx context.Context, sess Session) error {
	d := draft.Draft{FormData: sess.Doc, CurrentStep: int(sess.Step), Timestamp: w.now().UTC()}
	if err := w.drafts.Set(ctx, sess.ID, d); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}
