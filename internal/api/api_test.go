package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emofit/emofit-server/internal/auth"
	"github.com/emofit/emofit-server/internal/model"
	"github.com/emofit/emofit-server/internal/services"
	"github.com/emofit/emofit-server/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)

	authorizer := auth.NewJWTAuthorizer("test-secret", time.Hour)
	router := NewRouter(Deps{
		Journal:    services.NewJournalService(st),
		Users:      services.NewUserService(st),
		Authorizer: authorizer,
		Tokens:     authorizer,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func registerUser(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	resp, body := doJSON(t, "POST", srv.URL+"/api/users", "", map[string]string{
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register: %s", body)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, "POST", srv.URL+"/api/users", "", map[string]string{
		"email":    "desire@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%s", body)

	var created struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "desire@example.com", created.User.Email)
	assert.NotEmpty(t, created.Token)
	assert.NotContains(t, string(body), "passwordHash", "hash must never leave the server")

	// Duplicate email.
	resp, _ = doJSON(t, "POST", srv.URL+"/api/users", "", map[string]string{
		"email":    "desire@example.com",
		"password": "other-pass",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Login.
	resp, body = doJSON(t, "POST", srv.URL+"/api/auth", "", map[string]string{
		"email":    "desire@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	assert.NotEmpty(t, login.Token)

	// Wrong password.
	resp, _ = doJSON(t, "POST", srv.URL+"/api/auth", "", map[string]string{
		"email":    "desire@example.com",
		"password": "nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, "POST", srv.URL+"/api/users", "", map[string]string{
		"email":    "not-an-email",
		"password": "x",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Errors []model.FieldViolation `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out.Errors, 2)
}

func TestJournal_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{"POST", "/api/journal"},
		{"GET", "/api/journal"},
		{"GET", "/api/journal/stats"},
	} {
		resp, _ := doJSON(t, tc.method, srv.URL+tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s without token", tc.method, tc.path)

		resp, _ = doJSON(t, tc.method, srv.URL+tc.path, "bogus-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s with bad token", tc.method, tc.path)
	}
}

func TestJournal_CreateListStats(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "journal@example.com")

	first := time.Now().UTC().Add(-time.Hour)
	second := first.Add(time.Minute)

	resp, body := doJSON(t, "POST", srv.URL+"/api/journal", token, map[string]interface{}{
		"mood":      4,
		"gratitude": "coffee",
		"date":      first.Format(time.RFC3339Nano),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%s", body)

	var entry model.JournalEntry
	require.NoError(t, json.Unmarshal(body, &entry))
	assert.NotEmpty(t, entry.EntryID)
	assert.Equal(t, 4, entry.Mood)
	assert.NotNil(t, entry.Tags)

	resp, body = doJSON(t, "POST", srv.URL+"/api/journal", token, map[string]interface{}{
		"mood":      2,
		"gratitude": "rain",
		"tags":      []string{"reflective"},
		"date":      second.Format(time.RFC3339Nano),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%s", body)

	// List: newest first.
	resp, body = doJSON(t, "GET", srv.URL+"/api/journal?days=7", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []model.JournalEntry
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "rain", list[0].Gratitude)
	assert.Equal(t, "coffee", list[1].Gratitude)
	assert.Equal(t, []string{"reflective"}, list[0].Tags)

	// Stats: chronological trend, rounded average.
	resp, body = doJSON(t, "GET", srv.URL+"/api/journal/stats?days=7", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats model.MoodStats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 3.0, stats.AverageMood)
	require.Len(t, stats.MoodTrend, 2)
	assert.Equal(t, "coffee", stats.MoodTrend[0].Gratitude)
	assert.Equal(t, "rain", stats.MoodTrend[1].Gratitude)
}

func TestJournal_CreateValidation(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "invalid@example.com")

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing mood", map[string]interface{}{"gratitude": "coffee"}},
		{"mood too low", map[string]interface{}{"mood": 0, "gratitude": "coffee"}},
		{"mood too high", map[string]interface{}{"mood": 6, "gratitude": "coffee"}},
		{"fractional mood", map[string]interface{}{"mood": 3.5, "gratitude": "coffee"}},
		{"missing gratitude", map[string]interface{}{"mood": 3}},
		{"blank gratitude", map[string]interface{}{"mood": 3, "gratitude": "   "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, "POST", srv.URL+"/api/journal", token, tc.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s", body)

			var out struct {
				Errors []model.FieldViolation `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(body, &out))
			assert.NotEmpty(t, out.Errors)
		})
	}

	// Nothing should have been written.
	resp, body := doJSON(t, "GET", srv.URL+"/api/journal", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []model.JournalEntry
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Empty(t, list)
}

func TestJournal_BadDaysParam(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "days@example.com")

	for _, raw := range []string{"-1", "abc", "3.5"} {
		for _, path := range []string{"/api/journal", "/api/journal/stats"} {
			resp, _ := doJSON(t, "GET", fmt.Sprintf("%s%s?days=%s", srv.URL, path, raw), token, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s?days=%s", path, raw)
		}
	}
}

func TestJournal_UsersIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := registerUser(t, srv, "alice@example.com")
	bob := registerUser(t, srv, "bob@example.com")

	resp, _ := doJSON(t, "POST", srv.URL+"/api/journal", alice, map[string]interface{}{
		"mood": 5, "gratitude": "sunshine",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, "GET", srv.URL+"/api/journal", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []model.JournalEntry
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Empty(t, list)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	BindServiceHealth(func() bool { return true })
	t.Cleanup(func() { BindServiceHealth(func() bool { return false }) })

	resp, body := doJSON(t, "GET", srv.URL+"/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "healthy", out.Status)
	assert.NotEmpty(t, out.Timestamp)
}
