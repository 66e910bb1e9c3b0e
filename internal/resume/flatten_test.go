package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_ArraysStayOpaque(t *testing.T) {
	doc := map[string]any{
		"personalDetails": map[string]any{
			"fullName": "Ada Lovelace",
			"email":    "ada@example.com",
		},
		"objective": "Build things",
		"workExperience": []any{
			map[string]any{"jobTitle": "Engineer", "companyName": "Acme"},
		},
	}

	flat := Flatten(doc)

	assert.Equal(t, "Ada Lovelace", flat["personalDetails.fullName"])
	assert.Equal(t, "ada@example.com", flat["personalDetails.email"])
	assert.Equal(t, "Build things", flat["objective"])

	// The array is one leaf; its elements are not path-expanded.
	require.Contains(t, flat, "workExperience")
	assert.NotContains(t, flat, "workExperience.0.jobTitle")
	arr, ok := flat["workExperience"].([]any)
	require.True(t, ok)
	require.Len(t, arr, 1)
}

func TestUnflatten_RebuildsNestedObjects(t *testing.T) {
	flat := map[string]any{
		"personalDetails.fullName": "Ada Lovelace",
		"personalDetails.email":    "ada@example.com",
		"jobTitle":                 "Engineer",
		"skills":                   []any{map[string]any{"category": "Languages", "skills": "Go"}},
	}

	nested, err := Unflatten(flat)
	require.NoError(t, err)

	pd, ok := nested["personalDetails"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", pd["fullName"])
	assert.Equal(t, "ada@example.com", pd["email"])
	assert.Equal(t, "Engineer", nested["jobTitle"])
}

func TestUnflatten_LeafCollision(t *testing.T) {
	flat := map[string]any{
		"objective":      "Build things",
		"objective.text": "collides",
	}
	_, err := Unflatten(flat)
	require.Error(t, err)
}

func TestFlatten_RoundTrip(t *testing.T) {
	doc := sampleDocument()
	m, err := doc.ToMap()
	require.NoError(t, err)

	flat := Flatten(m)
	nested, err := Unflatten(flat)
	require.NoError(t, err)

	assert.Equal(t, flat, Flatten(nested), "flatten(unflatten(flatten(x))) == flatten(x)")

	restored, err := FromMap(nested)
	require.NoError(t, err)
	assert.Equal(t, doc, restored)
}

func TestFlattened_IncludesStyleMetadata(t *testing.T) {
	doc := sampleDocument()
	doc.AccentColor = "#2563eb"
	doc.Template = "minimal"

	flat, err := doc.Flattened()
	require.NoError(t, err)
	assert.Equal(t, "#2563eb", flat["accentColor"])
	assert.Equal(t, "minimal", flat["template"])
}
