package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("enhance.json", "enhance-description")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Description}}")

	prompt, err = Get("ats.json", "analyze-resume")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.ResumeText}}")
}

func TestGet_MissingFileAndKey(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)

	_, err = Get("enhance.json", "nonexistent-key")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, you are {{.Role}}", map[string]string{
		"Name": "Ada",
		"Role": "an engineer",
	})
	assert.Equal(t, "Hello Ada, you are an engineer", out)
}
