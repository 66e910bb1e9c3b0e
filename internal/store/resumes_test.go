package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/resume"
)

func TestApplyPatchLeaves(t *testing.T) {
	doc := map[string]any{
		"objective": "Old",
		"personalDetails": map[string]any{
			"fullName": "Ada Lovelace",
			"email":    "ada@example.com",
		},
	}

	err := applyPatch(doc, map[string]any{
		"objective":             "New objective",
		"personalDetails.email": "countess@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "New objective", doc["objective"])
	pd := doc["personalDetails"].(map[string]any)
	assert.Equal(t, "countess@example.com", pd["email"])
	assert.Equal(t, "Ada Lovelace", pd["fullName"])
}

func TestApplyPatchArraysAreWholeValues(t *testing.T) {
	doc := map[string]any{
		"workExperience": []any{
			map[string]any{"jobTitle": "Old Title"},
		},
	}

	err := applyPatch(doc, map[string]any{
		"workExperience": []any{
			map[string]any{"jobTitle": "Engineer", "companyName": "Engines Ltd"},
			map[string]any{"jobTitle": "Analyst"},
		},
	})
	require.NoError(t, err)

	entries := doc["workExperience"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "Engineer", entries[0].(map[string]any)["jobTitle"])
}

func TestApplyPatchCreatesMissingObjects(t *testing.T) {
	doc := map[string]any{}
	err := applyPatch(doc, map[string]any{"personalDetails.phone": "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", doc["personalDetails"].(map[string]any)["phone"])
}

func TestApplyPatchRejectsLeafCollision(t *testing.T) {
	doc := map[string]any{"objective": "text"}
	err := applyPatch(doc, map[string]any{"objective.nested": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an object")
}

func TestApplyPatchRoundTripsThroughDocument(t *testing.T) {
	doc := resume.NewDocument()
	m, err := doc.ToMap()
	require.NoError(t, err)

	err = applyPatch(m, map[string]any{
		"personalDetails.fullName": "Ada Lovelace",
		"accentColor":              "#336699",
	})
	require.NoError(t, err)

	rebuilt, err := resume.FromMap(m)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", rebuilt.PersonalDetails.FullName)
	assert.Equal(t, "#336699", rebuilt.AccentColor)
}
