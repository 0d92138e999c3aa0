package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daybook/internal/auth"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/journal"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage/sqlite"
)

type testEnv struct {
	server *Server
	token  string
}

func setupServer(t *testing.T) testEnv {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "server.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	j, err := journal.NewServiceWithSettings(store, models.Settings{Timezone: "UTC"})
	if err != nil {
		t.Fatalf("NewServiceWithSettings failed: %v", err)
	}
	tokens, err := auth.NewTokens([]byte("server-test-secret-server-test-s"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}
	a := auth.NewService(store, tokens)

	session, err := a.Register(context.Background(), "writer@example.com", "long enough")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return testEnv{server: New(j, a, Config{}), token: session.Token}
}

func (e testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestPageGuard(t *testing.T) {
	env := setupServer(t)

	tests := []struct {
		path       string
		token      string
		wantStatus int
	}{
		{path: "/", wantStatus: http.StatusOK},
		{path: "/login", wantStatus: http.StatusOK},
		{path: "/register", wantStatus: http.StatusOK},
		{path: "/reset-password", wantStatus: http.StatusOK},
		{path: "/resources", wantStatus: http.StatusOK},
		{path: "/calendar", wantStatus: http.StatusFound},
		{path: "/dashboard", wantStatus: http.StatusFound},
		{path: "/dashboard", token: "garbage", wantStatus: http.StatusFound},
		{path: "/calendar", token: env.token, wantStatus: http.StatusOK},
		{path: "/dashboard", token: env.token, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil, tt.token)
			if rec.Code != tt.wantStatus {
				t.Fatalf("GET %s = %d, want %d", tt.path, rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusFound {
				if loc := rec.Header().Get("Location"); loc != "/login" {
					t.Errorf("Location = %q, want /login", loc)
				}
			}
		})
	}
}

func TestHomePageAnonymous(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodGet, "/", nil, "")
	var p struct {
		Name          string       `json:"page"`
		Authenticated bool         `json:"authenticated"`
		Data          journal.Home `json:"data"`
	}
	decode(t, rec, &p)
	if p.Name != "home" || p.Authenticated {
		t.Errorf("page = %q, authenticated %v", p.Name, p.Authenticated)
	}
	if len(p.Data.Prompts) != 3 || !p.Data.Anonymous {
		t.Errorf("home has %d prompts, anonymous %v", len(p.Data.Prompts), p.Data.Anonymous)
	}
}

func TestAPIRequiresSession(t *testing.T) {
	env := setupServer(t)

	for _, path := range []string{"/api/me", "/api/entries", "/api/dashboard", "/api/streak"} {
		rec := env.do(t, http.MethodGet, path, nil, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", path, rec.Code)
			continue
		}
		var body errorBody
		decode(t, rec, &body)
		if body.Code != "UNAUTHORIZED" {
			t.Errorf("GET %s code = %q", path, body.Code)
		}
	}

	rec := env.do(t, http.MethodGet, "/api/prompts", nil, "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/prompts = %d, want 200", rec.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", credentialsInput{Email: "writer@example.com", Password: "wrong password"}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", credentialsInput{Email: "writer@example.com", Password: "long enough"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
	var session auth.Session
	decode(t, rec, &session)
	if session.Token == "" || session.User.Email != "writer@example.com" {
		t.Fatalf("session = %+v", session)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatal("expected an HttpOnly session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(cookie)
	me := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Errorf("GET /api/me with cookie = %d", me.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/register", credentialsInput{Email: "writer@example.com", Password: "long enough"}, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register = %d, want 409", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/register", map[string]string{"email": "x@example.com"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing password = %d, want 400", rec.Code)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/api/auth/reset-password/request", resetRequestInput{Email: "writer@example.com"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset request = %d", rec.Code)
	}
	var issued struct {
		Token string `json:"token"`
	}
	decode(t, rec, &issued)
	if issued.Token == "" {
		t.Fatal("expected a reset token")
	}

	rec = env.do(t, http.MethodPost, "/api/auth/reset-password", resetInput{Token: issued.Token, Password: "brand new pass"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/auth/reset-password", resetInput{Token: issued.Token, Password: "another pass"}, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("reused token = %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/login", credentialsInput{Email: "writer@example.com", Password: "brand new pass"}, "")
	if rec.Code != http.StatusOK {
		t.Errorf("login with new password = %d", rec.Code)
	}
}

func TestEntryLifecycle(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodPost, "/api/entries", entryInput{PromptID: "gratitude", Content: "   "}, env.token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank submit = %d, want 400", rec.Code)
	}
	var blank errorBody
	decode(t, rec, &blank)
	if blank.Error != constants.BannerEmptyContent {
		t.Errorf("blank submit error = %q", blank.Error)
	}

	rec = env.do(t, http.MethodPost, "/api/entries", entryInput{PromptID: "gratitude", Content: "Morning light", Mood: 4}, env.token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit = %d: %s", rec.Code, rec.Body.String())
	}
	var saved struct {
		Entry   models.JournalEntry `json:"entry"`
		Streak  models.StreakInfo   `json:"streak"`
		Message string              `json:"message"`
	}
	decode(t, rec, &saved)
	if saved.Streak.CurrentStreak != 1 || saved.Message != constants.BannerEntrySaved {
		t.Errorf("submit response = %+v", saved)
	}

	rec = env.do(t, http.MethodPost, "/api/entries", entryInput{PromptID: "gratitude", Content: "Morning light again"}, env.token)
	if rec.Code != http.StatusOK {
		t.Errorf("resubmit = %d, want 200", rec.Code)
	}

	rec = env.do(t, http.MethodPut, "/api/entries/"+saved.Entry.ID, entryInput{Content: "Evening light", Mood: 5}, env.token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/entries/search?q=EVENING", nil, env.token)
	var found struct {
		Entries []models.HistoryEntry `json:"entries"`
	}
	decode(t, rec, &found)
	if len(found.Entries) != 1 || found.Entries[0].Content != "Evening light" || found.Entries[0].Prompt.Title() != "Gratitude" {
		t.Errorf("search results = %+v", found.Entries)
	}

	rec = env.do(t, http.MethodGet, "/api/entries/search?q=", nil, env.token)
	decode(t, rec, &found)
	if len(found.Entries) != 1 {
		t.Errorf("blank search returned %d entries, want history of 1", len(found.Entries))
	}

	rec = env.do(t, http.MethodGet, "/api/entries/missing", nil, env.token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing entry = %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/entries?limit=abc", nil, env.token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/calendar?month=bad", nil, env.token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad month = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/dashboard", nil, env.token)
	if rec.Code != http.StatusOK {
		t.Errorf("dashboard = %d", rec.Code)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	env := setupServer(t)
	env.server.cfg.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.server.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
