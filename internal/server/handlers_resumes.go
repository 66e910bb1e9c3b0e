package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/jonathan/resume-studio/internal/render"
	"github.com/jonathan/resume-studio/internal/resume"
	"github.com/jonathan/resume-studio/internal/server/middleware"
)

// CreateResumeRequest is the request body for POST /resumes. The document is
// optional; omitting it creates a freshly seeded one.
type CreateResumeRequest struct {
	Document *resume.Document `json:"document,omitempty"`
}

// CreateResumeResponse is the response for POST /resumes
type CreateResumeResponse struct {
	ResumeID string          `json:"resumeId"`
	Document resume.Document `json:"document"`
}

// ReorderRequest is the request body for POST /resumes/{id}/order
type ReorderRequest struct {
	Section resume.Section `json:"section"`
	Op      string         `json:"op"` // "up", "down", or "move"
	To      int            `json:"to,omitempty"`
}

func (s *Server) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

// loadResume fetches a document and writes the 404 itself when missing.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request, userID, resumeID string) (*resume.Document, bool) {
	doc, err := s.store.GetResume(r.Context(), userID, resumeID)
	if err != nil {
		log.Printf("Error loading resume %s: %v", resumeID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load resume")
		return nil, false
	}
	if doc == nil {
		err := &ErrResumeNotFound{ResumeID: resumeID}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}
	return doc, true
}

// handleListResumes returns summaries of the user's resumes
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	summaries, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing resumes: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list resumes")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": summaries})
}

// handleCreateResume stores a new document under a fresh id
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req CreateResumeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	doc := resume.NewDocument()
	if req.Document != nil {
		doc = *req.Document
		if err := doc.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid document: "+err.Error())
			return
		}
	}

	resumeID := fmt.Sprintf("resume_%d", time.Now().UnixMilli())
	if err := s.store.CreateResume(r.Context(), userID, resumeID, doc); err != nil {
		log.Printf("Error creating resume: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create resume")
		return
	}

	s.jsonResponse(w, http.StatusCreated, CreateResumeResponse{ResumeID: resumeID, Document: doc})
}

// handleGetResume returns one document
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	doc, ok := s.loadResume(w, r, userID, r.PathValue("id"))
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleSaveResume overwrites a document whole
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	resumeID := r.PathValue("id")

	var doc resume.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := doc.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid document: "+err.Error())
		return
	}

	if err := s.store.SaveResume(r.Context(), userID, resumeID, doc); err != nil {
		log.Printf("Error saving resume %s: %v", resumeID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleDeleteResume removes a document
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	resumeID := r.PathValue("id")

	if err := s.store.DeleteResume(r.Context(), userID, resumeID); err != nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePatchFields applies a flattened field map to a document
func (s *Server) handlePatchFields(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	resumeID := r.PathValue("id")

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(patch) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Patch is empty")
		return
	}

	doc, err := s.store.PatchResume(r.Context(), userID, resumeID, patch)
	if err != nil {
		log.Printf("Error patching resume %s: %v", resumeID, err)
		s.errorResponse(w, http.StatusBadRequest, "Failed to patch resume: "+err.Error())
		return
	}
	if doc == nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleReorderSections moves a section within the document's order
func (s *Server) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	resumeID := r.PathValue("id")

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, ok := s.loadResume(w, r, userID, resumeID)
	if !ok {
		return
	}

	order := resume.NormalizeOrder(doc.SectionOrder)
	i := slices.Index(order, req.Section)
	if i < 0 {
		verr := &ErrValidation{Field: "section", Message: "unknown section"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}
	switch req.Op {
	case "up":
		order = resume.MoveUp(order, i)
	case "down":
		order = resume.MoveDown(order, i)
	case "move":
		order = resume.MoveTo(order, i, req.To)
	default:
		verr := &ErrValidation{Field: "op", Message: "must be up, down, or move"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	doc.SectionOrder = order
	if err := s.store.SaveResume(r.Context(), userID, resumeID, *doc); err != nil {
		log.Printf("Error saving resume %s: %v", resumeID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"sectionOrder": order})
}

// renderOptions builds render options from query parameters.
func renderOptions(r *http.Request) render.Options {
	q := r.URL.Query()
	return render.Options{
		Style:   q.Get("template"),
		Editing: q.Get("editing") == "true",
	}
}

// handlePreview renders a document as standalone HTML
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	doc, ok := s.loadResume(w, r, userID, r.PathValue("id"))
	if !ok {
		return
	}

	html, err := s.engine.Render(*doc, renderOptions(r))
	if err != nil {
		log.Printf("Error rendering resume: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render resume")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("Error writing preview: %v", err)
	}
}

// handleExport prints a document to PDF and streams it down
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	doc, ok := s.loadResume(w, r, userID, r.PathValue("id"))
	if !ok {
		return
	}

	pdf, filename, err := s.exporter.ExportPDF(r.Context(), *doc, renderOptions(r))
	if err != nil {
		log.Printf("Error exporting resume: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to export resume")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF: %v", err)
	}
}
