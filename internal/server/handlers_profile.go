package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/resume-studio/internal/render"
	"github.com/jonathan/resume-studio/internal/store"
)

// ProfileRequest is the request body for PUT /profile
type ProfileRequest struct {
	DisplayName     string `json:"displayName"`
	DefaultTemplate string `json:"defaultTemplate"`
}

const maxDisplayNameLength = 100

// handleGetProfile returns the user's settings, defaults when none saved yet
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	p, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if p == nil {
		p = &store.Profile{DefaultTemplate: render.DefaultStyle}
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handleSaveProfile creates or replaces the user's settings
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.DisplayName) > maxDisplayNameLength {
		err := &ErrValidation{Field: "displayName", Message: "display name is too long"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if req.DefaultTemplate != "" && !render.KnownStyle(req.DefaultTemplate) {
		err := &ErrValidation{Field: "defaultTemplate", Message: "unknown template"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	p := store.Profile{DisplayName: req.DisplayName, DefaultTemplate: req.DefaultTemplate}
	if err := s.store.SaveProfile(r.Context(), userID, p); err != nil {
		log.Printf("Error saving profile: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}
