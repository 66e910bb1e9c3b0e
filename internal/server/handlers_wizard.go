package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/resume-studio/internal/resume"
	"github.com/jonathan/resume-studio/internal/wizard"
)

// WizardStateResponse describes the current builder session.
type WizardStateResponse struct {
	Step      int             `json:"step"`
	StepName  string          `json:"stepName"`
	StepCount int             `json:"stepCount"`
	Restored  bool            `json:"restored"`
	Document  resume.Document `json:"document"`
}

// WizardFieldRequest is the request body for POST /wizard/fields
type WizardFieldRequest struct {
	Section string `json:"section"`
	Index   *int   `json:"index,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value"`
}

// WizardSubmitResponse is the response for POST /wizard/submit
type WizardSubmitResponse struct {
	ResumeID string `json:"resumeId"`
}

func wizardState(sess wizard.Session, restored bool) WizardStateResponse {
	return WizardStateResponse{
		Step:      int(sess.Step),
		StepName:  sess.Step.String(),
		StepCount: wizard.StepCount(),
		Restored:  restored,
		Document:  sess.Doc,
	}
}

// startSession opens the caller's builder session, restoring any draft.
// One session per user; the session id is the user id.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request) (wizard.Session, bool, bool) {
	userID, ok := s.userID(w, r)
	if !ok {
		return wizard.Session{}, false, false
	}

	sess, restored, err := s.wizard.Start(r.Context(), userID)
	if err != nil {
		log.Printf("Error starting wizard session: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load builder session")
		return wizard.Session{}, false, false
	}
	return sess, restored, true
}

// writeWizardError maps wizard failures onto responses; validation failures
// carry the per-field errors so the form can annotate itself.
func (s *Server) writeWizardError(w http.ResponseWriter, err error) {
	var verrs wizard.ValidationErrors
	if errors.As(err, &verrs) {
		s.jsonResponse(w, HTTPStatus(verrs), map[string]any{
			"error":  "validation_failed",
			"fields": verrs,
		})
		return
	}
	log.Printf("Wizard error: %v", err)
	s.errorResponse(w, http.StatusInternalServerError, "Builder operation failed")
}

// handleWizardState returns the current session, restoring a draft if one exists
func (s *Server) handleWizardState(w http.ResponseWriter, r *http.Request) {
	sess, restored, ok := s.startSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, wizardState(sess, restored))
}

// handleWizardField applies one field edit to the session draft
func (s *Server) handleWizardField(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.startSession(w, r)
	if !ok {
		return
	}

	var req WizardFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ref, err := resume.ParseFieldRef(req.Section, req.Index, req.Field)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err = s.wizard.UpdateField(r.Context(), sess, ref, req.Value)
	if err != nil {
		var badIndex *resume.ErrIndexOutOfRange
		if errors.As(err, &badIndex) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeWizardError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, wizardState(sess, false))
}

// handleWizardNext validates the current step and advances
func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.startSession(w, r)
	if !ok {
		return
	}

	sess, err := s.wizard.Next(r.Context(), sess)
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, wizardState(sess, false))
}

// handleWizardPrevious steps back without validating
func (s *Server) handleWizardPrevious(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.startSession(w, r)
	if !ok {
		return
	}

	sess, err := s.wizard.Previous(r.Context(), sess)
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, wizardState(sess, false))
}

// handleWizardSubmit saves the finished resume and clears the draft
func (s *Server) handleWizardSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	sess, _, ok := s.startSession(w, r)
	if !ok {
		return
	}

	resumeID, err := s.wizard.Submit(r.Context(), sess, userID)
	if err != nil {
		s.writeWizardError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, WizardSubmitResponse{ResumeID: resumeID})
}
