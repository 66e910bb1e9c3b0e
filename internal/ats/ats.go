// Package ats scores an uploaded resume PDF for applicant-tracking-system
// compatibility: validate the upload, pull the text out of the PDF, and ask
// the model for a score with keywords and suggestions.
package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/prompts"
)

// MaxUploadSize is the largest PDF accepted, in bytes.
const MaxUploadSize = 5 << 20

// MaxKeywords caps the keyword list in a report.
const MaxKeywords = 10

// ErrNotPDF is returned when the upload is not a PDF document.
var ErrNotPDF = fmt.Errorf("file must be a PDF")

// ErrTooLarge is returned when the upload exceeds MaxUploadSize.
var ErrTooLarge = fmt.Errorf("file exceeds the %dMB limit", MaxUploadSize>>20)

// Report is the analysis result for one resume.
type Report struct {
	Score       int      `json:"score"`
	Keywords    []string `json:"keywords"`
	Suggestions []string `json:"suggestions"`
}

// Checker runs resume uploads through extraction and model analysis.
type Checker struct {
	client llm.Client
}

// New creates a checker over the given LLM client.
func New(client llm.Client) *Checker {
	return &Checker{client: client}
}

// ValidateUpload rejects bad uploads before any extraction or network work.
// The declared content type is checked alongside the file magic, so a renamed
// docx does not sneak through.
func ValidateUpload(data []byte, contentType string) error {
	if len(data) > MaxUploadSize {
		return ErrTooLarge
	}
	if contentType != "" && contentType != "application/pdf" {
		return ErrNotPDF
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return ErrNotPDF
	}
	return nil
}

// ExtractText pulls the plain text out of a PDF document.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("no text found in PDF")
	}
	return text, nil
}

// Check validates, extracts, and analyzes an uploaded resume.
func (c *Checker) Check(ctx context.Context, data []byte, contentType string) (*Report, error) {
	if err := ValidateUpload(data, contentType); err != nil {
		return nil, err
	}

	text, err := ExtractText(data)
	if err != nil {
		return nil, err
	}

	return c.Analyze(ctx, text)
}

// Analyze scores extracted resume text with the model.
func (c *Checker) Analyze(ctx context.Context, resumeText string) (*Report, error) {
	prompt := prompts.Format(
		prompts.MustGet("ats.json", "analyze-resume"),
		map[string]string{"ResumeText": resumeText},
	)

	raw, err := c.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze resume: %w", err)
	}

	report, err := parseReport(raw)
	if err != nil {
		log.Printf("discarding malformed analysis response: %v", err)
		return nil, fmt.Errorf("analysis response was malformed: %w", err)
	}
	return report, nil
}

// parseReport decodes and normalizes a model response. Scores are clamped to
// [0, 100] and the keyword list is truncated rather than rejected.
func parseReport(raw string) (*Report, error) {
	var report Report
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &report); err != nil {
		return nil, err
	}

	if report.Score < 0 {
		report.Score = 0
	}
	if report.Score > 100 {
		report.Score = 100
	}
	if len(report.Keywords) > MaxKeywords {
		report.Keywords = report.Keywords[:MaxKeywords]
	}
	if report.Keywords == nil {
		report.Keywords = []string{}
	}
	if report.Suggestions == nil {
		report.Suggestions = []string{}
	}
	return &report, nil
}
