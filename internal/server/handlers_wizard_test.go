package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wizardPost(t *testing.T, s *Server, handler http.HandlerFunc, body string) (*httptest.ResponseRecorder, WizardStateResponse) {
	t.Helper()

	req := request(http.MethodPost, "/wizard", "user-1", body)
	w := httptest.NewRecorder()
	handler(w, req)

	var state WizardStateResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	}
	return w, state
}

func TestHandleWizardStateFresh(t *testing.T) {
	s := newTestServer()

	req := request(http.MethodGet, "/wizard", "user-1", "")
	w := httptest.NewRecorder()
	s.handleWizardState(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var state WizardStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, 0, state.Step)
	assert.Equal(t, "Personal Info", state.StepName)
	assert.Equal(t, 9, state.StepCount)
	assert.False(t, state.Restored)
}

func TestHandleWizardFlow(t *testing.T) {
	s := newTestServer()

	// fill the first step
	_, state := wizardPost(t, s, s.handleWizardField,
		`{"section":"personalDetails","field":"fullName","value":"Ada Lovelace"}`)
	assert.Equal(t, "Ada Lovelace", state.Document.PersonalDetails.FullName)

	w, _ := wizardPost(t, s, s.handleWizardField,
		`{"section":"personalDetails","field":"email","value":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// advance
	w, state = wizardPost(t, s, s.handleWizardNext, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, state.Step)

	// state survives a "page reload"
	req := request(http.MethodGet, "/wizard", "user-1", "")
	rec := httptest.NewRecorder()
	s.handleWizardState(rec, req)
	var restored WizardStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restored))
	assert.True(t, restored.Restored)
	assert.Equal(t, 1, restored.Step)
	assert.Equal(t, "Ada Lovelace", restored.Document.PersonalDetails.FullName)

	// back is unconditional
	w, state = wizardPost(t, s, s.handleWizardPrevious, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, state.Step)
}

func TestHandleWizardNextValidationFailure(t *testing.T) {
	s := newTestServer()

	req := request(http.MethodPost, "/wizard/next", "user-1", "")
	w := httptest.NewRecorder()
	s.handleWizardNext(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Error  string `json:"error"`
		Fields []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Error)
	fields := make([]string, len(resp.Fields))
	for i, f := range resp.Fields {
		fields[i] = f.Field
	}
	assert.Contains(t, fields, "personalDetails.fullName")
	assert.Contains(t, fields, "personalDetails.email")
}

func TestHandleWizardFieldBadRef(t *testing.T) {
	s := newTestServer()

	w, _ := wizardPost(t, s, s.handleWizardField,
		`{"section":"bogus","field":"x","value":"y"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = wizardPost(t, s, s.handleWizardField,
		`{"section":"workExperience","index":5,"field":"jobTitle","value":"Engineer"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWizardSubmit(t *testing.T) {
	s := newTestServer()

	_, _ = wizardPost(t, s, s.handleWizardField,
		`{"section":"personalDetails","field":"fullName","value":"Ada Lovelace"}`)
	_, _ = wizardPost(t, s, s.handleWizardField,
		`{"section":"personalDetails","field":"email","value":"ada@example.com"}`)

	req := request(http.MethodPost, "/wizard/submit", "user-1", "")
	w := httptest.NewRecorder()
	s.handleWizardSubmit(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp WizardSubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.ResumeID, "resume_"))

	// the resume landed in the store and the draft is gone
	saved := s.store.(*mockStore).docs[key("user-1", resp.ResumeID)]
	assert.Equal(t, "Ada Lovelace", saved.PersonalDetails.FullName)

	state := request(http.MethodGet, "/wizard", "user-1", "")
	rec := httptest.NewRecorder()
	s.handleWizardState(rec, state)
	var fresh WizardStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fresh))
	assert.False(t, fresh.Restored)
}

func TestHandleWizardSubmitInvalid(t *testing.T) {
	s := newTestServer()

	req := request(http.MethodPost, "/wizard/submit", "user-1", "")
	w := httptest.NewRecorder()
	s.handleWizardSubmit(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
