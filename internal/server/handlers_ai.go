package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-studio/internal/ats"
)

// EnhanceRequest is the request body for POST /enhance
type EnhanceRequest struct {
	Description string `json:"description"`
}

// EnhanceResponse is the response for POST /enhance
type EnhanceResponse struct {
	Enhanced string `json:"enhanced"`
}

// handleEnhance rewrites a description with the model
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.userID(w, r); !ok {
		return
	}
	if s.enhancer == nil {
		err := &ErrNotConfigured{Feature: "text enhancement"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	enhanced, err := s.enhancer.Enhance(r.Context(), req.Description)
	if err != nil {
		log.Printf("Error enhancing description: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Enhancement failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, EnhanceResponse{Enhanced: enhanced})
}

// handleATSCheck scores an uploaded resume PDF
func (s *Server) handleATSCheck(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.userID(w, r); !ok {
		return
	}
	if s.checker == nil {
		err := &ErrNotConfigured{Feature: "ATS analysis"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// one byte past the cap distinguishes "too large" from "at the limit"
	if err := r.ParseMultipartForm(ats.MaxUploadSize + 1); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing 'resume' file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ats.MaxUploadSize+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	report, err := s.checker.Check(r.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Error running ATS check: %v", err)
			status = http.StatusBadGateway
		}
		s.errorResponse(w, status, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}
