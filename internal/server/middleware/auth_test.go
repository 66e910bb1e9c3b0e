package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	userID string
	err    error
}

func (f *fakeValidator) ValidateToken(string) (string, error) {
	return f.userID, f.err
}

func runAuth(t *testing.T, validator TokenValidator, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var gotUserID string
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, gotUserID
}

func TestAuthValidToken(t *testing.T) {
	w, userID := runAuth(t, &fakeValidator{userID: "user-abc"}, "Bearer token123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-abc", userID)
}

func TestAuthCaseInsensitiveBearer(t *testing.T) {
	w, userID := runAuth(t, &fakeValidator{userID: "user-abc"}, "bearer token123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-abc", userID)
}

func TestAuthRejections(t *testing.T) {
	cases := map[string]struct {
		validator TokenValidator
		header    string
	}{
		"missing header":  {&fakeValidator{userID: "u"}, ""},
		"not bearer":      {&fakeValidator{userID: "u"}, "Basic dXNlcjpwYXNz"},
		"empty token":     {&fakeValidator{userID: "u"}, "Bearer "},
		"invalid token":   {&fakeValidator{err: errors.New("expired")}, "Bearer bad"},
		"empty user id":   {&fakeValidator{userID: ""}, "Bearer token"},
		"malformed parts": {&fakeValidator{userID: "u"}, "Bearer a b c"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w, _ := runAuth(t, tc.validator, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}
