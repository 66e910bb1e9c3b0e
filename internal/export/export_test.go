package export

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/render"
	"github.com/jonathan/resume-studio/internal/resume"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "Ada Lovelace's Resume - Made Using ResumeStudio.pdf", Filename("Ada Lovelace"))
	assert.Equal(t, "Resume - Made Using ResumeStudio.pdf", Filename("   "))
	// path and shell metacharacters get flattened
	assert.Equal(t, "a-b's Resume - Made Using ResumeStudio.pdf", Filename("a/b"))
}

func TestNewDefaultsConcurrency(t *testing.T) {
	engine, err := render.New()
	require.NoError(t, err)

	e := New(engine, 0, "")
	require.NotNil(t, e.sem)
	// the default allows two slots
	require.True(t, e.sem.TryAcquire(DefaultMaxConcurrent))
	assert.False(t, e.sem.TryAcquire(1))
	e.sem.Release(DefaultMaxConcurrent)
}

func TestNewChromePath(t *testing.T) {
	engine, err := render.New()
	require.NoError(t, err)

	// explicit path wins
	t.Setenv("CHROME_PATH", "/env/chrome")
	e := New(engine, 1, "/opt/chrome")
	assert.Equal(t, "/opt/chrome", e.chromePath)

	// empty path falls back to the environment
	e = New(engine, 1, "")
	assert.Equal(t, "/env/chrome", e.chromePath)
}

// TestExportPDF requires a Chrome binary.
// Set CHROME_PATH (or have Chrome on PATH) to run it.
func TestExportPDF(t *testing.T) {
	if os.Getenv("CHROME_PATH") == "" {
		t.Skip("CHROME_PATH not set, skipping Chrome integration test")
	}

	engine, err := render.New()
	require.NoError(t, err)
	e := New(engine, 1, "")

	doc := resume.NewDocument()
	doc.PersonalDetails.FullName = "Ada Lovelace"
	doc.Objective = "Build analytical engines"

	pdf, filename, err := e.ExportPDF(context.Background(), doc, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace's Resume - Made Using ResumeStudio.pdf", filename)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}
