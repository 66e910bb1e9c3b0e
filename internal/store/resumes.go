package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-studio/internal/resume"
)

const resumesCreatedKey = "resumes_created"

// Summary is a lightweight view of a stored resume for listing.
type Summary struct {
	ResumeID  string    `json:"resumeId"`
	FullName  string    `json:"fullName"`
	JobTitle  string    `json:"jobTitle"`
	Template  string    `json:"template"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateResume stores a new document and bumps the site-wide created
// counter in the same transaction.
func (s *Store) CreateResume(ctx context.Context, userID, resumeID string, doc resume.Document) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO resumes (user_id, resume_id, doc)
		 VALUES ($1, $2, $3)`,
		userID, resumeID, docJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume %s: %w", resumeID, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO site_stats (key, value) VALUES ($1, 1)
		 ON CONFLICT (key) DO UPDATE SET value = site_stats.value + 1`,
		resumesCreatedKey,
	)
	if err != nil {
		return fmt.Errorf("failed to bump created counter: %w", err)
	}

	return tx.Commit(ctx)
}

// SaveResume overwrites an existing document whole.
func (s *Store) SaveResume(ctx context.Context, userID, resumeID string, doc resume.Document) error {
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	result, err := s.pool.Exec(ctx,
		`UPDATE resumes SET doc = $3, updated_at = NOW()
		 WHERE user_id = $1 AND resume_id = $2`,
		userID, resumeID, docJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume %s: %w", resumeID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", resumeID)
	}
	return nil
}

// GetResume retrieves a document, or nil when it does not exist.
func (s *Store) GetResume(ctx context.Context, userID, resumeID string) (*resume.Document, error) {
	var docJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM resumes WHERE user_id = $1 AND resume_id = $2`,
		userID, resumeID,
	).Scan(&docJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume %s: %w", resumeID, err)
	}

	var doc resume.Document
	if err := json.Unmarshal(docJSON, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", resumeID, err)
	}
	return &doc, nil
}

// ListResumes returns summaries of a user's resumes, newest first.
func (s *Store) ListResumes(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT resume_id,
		        COALESCE(doc->'personalDetails'->>'fullName', ''),
		        COALESCE(doc->>'jobTitle', ''),
		        COALESCE(doc->>'template', ''),
		        updated_at
		 FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ResumeID, &sum.FullName, &sum.JobTitle, &sum.Template, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// DeleteResume removes a document.
func (s *Store) DeleteResume(ctx context.Context, userID, resumeID string) error {
	result, err := s.pool.Exec(ctx,
		`DELETE FROM resumes WHERE user_id = $1 AND resume_id = $2`,
		userID, resumeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume %s: %w", resumeID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", resumeID)
	}
	return nil
}

// PatchResume applies a flattened field map (dotted paths, arrays as whole
// values) to a stored document. The row is locked for the read-modify-write
// so concurrent patches serialize instead of clobbering each other.
func (s *Store) PatchResume(ctx context.Context, userID, resumeID string, patch map[string]any) (*resume.Document, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var docJSON []byte
	err = tx.QueryRow(ctx,
		`SELECT doc FROM resumes WHERE user_id = $1 AND resume_id = $2 FOR UPDATE`,
		userID, resumeID,
	).Scan(&docJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume %s: %w", resumeID, err)
	}

	var docMap map[string]any
	if err := json.Unmarshal(docJSON, &docMap); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", resumeID, err)
	}
	if err := applyPatch(docMap, patch); err != nil {
		return nil, fmt.Errorf("failed to patch resume %s: %w", resumeID, err)
	}
	docMap["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	doc, err := resume.FromMap(docMap)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild resume %s: %w", resumeID, err)
	}

	updated, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE resumes SET doc = $3, updated_at = NOW()
		 WHERE user_id = $1 AND resume_id = $2`,
		userID, resumeID, updated,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume %s: %w", resumeID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ResumesCreated returns the site-wide count of resumes ever created.
func (s *Store) ResumesCreated(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM site_stats WHERE key = $1`, resumesCreatedKey,
	).Scan(&count)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read created counter: %w", err)
	}
	return count, nil
}

// applyPatch merges flattened dotted paths into a decoded document map.
// Intermediate objects are created on demand; a path segment that lands on a
// non-object leaf is an error rather than a silent overwrite.
func applyPatch(doc map[string]any, patch map[string]any) error {
	for path, value := range patch {
		parts := strings.Split(path, ".")
		m := doc
		for _, part := range parts[:len(parts)-1] {
			child, ok := m[part]
			if !ok || child == nil {
				next := map[string]any{}
				m[part] = next
				m = next
				continue
			}
			obj, ok := child.(map[string]any)
			if !ok {
				return fmt.Errorf("path %q: %q is not an object", path, part)
			}
			m = obj
		}
		m[parts[len(parts)-1]] = value
	}
	return nil
}
