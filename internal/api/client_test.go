package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// memTokens is an in-memory TokenSource for tests.
type memTokens struct {
	mu          sync.Mutex
	token       string
	invalidated bool
}

func (m *memTokens) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *memTokens) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.invalidated = true
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *memTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := &memTokens{token: token}
	c, err := New(srv.URL, tokens)
	if err != nil {
		t.Fatal(err)
	}
	return c, tokens
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"tasks":[],"total":0}`))
	}, "tok-123")

	if _, err := c.FetchTasks(context.Background(), FilterQuery(DefaultFilter())); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var present bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth, present = r.Header.Get("Authorization"), r.Header.Get("Authorization") != ""
		w.Write([]byte(`{"access_token":"t","token_type":"bearer","user":{"id":"u1","email":"a@b.c"}}`))
	}, "")

	if _, err := c.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatal(err)
	}
	if present {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_UnauthorizedClearsTokenAndFiresHook(t *testing.T) {
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}, "stale")

	var hookFired bool
	c.OnUnauthorized(func() { hookFired = true })

	_, err := c.CurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUnauthorized(err) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
	if !tokens.invalidated {
		t.Error("401 must invalidate the stored token")
	}
	if !hookFired {
		t.Error("401 must fire the unauthorized hook")
	}
	if tokens.AccessToken() != "" {
		t.Error("token must be cleared")
	}
}

func TestClient_ErrorDetailString(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Task not found"}`))
	}, "tok")

	_, err := c.GetTask(context.Background(), "task-1")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != 404 || apiErr.Detail != "Task not found" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestClient_ErrorDetailValidationList(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","title"],"msg":"field required"}]}`))
	}, "tok")

	_, err := c.CreateTask(context.Background(), TaskCreate{})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Detail == "" {
		t.Error("validation detail should be preserved")
	}
}

func TestClient_SearchHitsSearchEndpoint(t *testing.T) {
	var gotPath, gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"tasks":[],"total":0}`))
	}, "tok")

	if _, err := c.FetchTasks(context.Background(), SearchQuery("milk")); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/api/tasks/search" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotQuery != "q=milk" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestClient_ToggleCompleteUsesPatch(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":"task-1","title":"x","status":"completed","priority":"Medium"}`))
	}, "tok")

	task, err := c.ToggleComplete(context.Background(), "task-1")
	if err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/tasks/task-1/complete" {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}
	if task.Status != StatusCompleted {
		t.Errorf("unexpected status %s", task.Status)
	}
}

func TestClient_DefaultBaseURL(t *testing.T) {
	c, err := New("", &memTokens{})
	if err != nil {
		t.Fatal(err)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("expected default base url, got %q", c.BaseURL())
	}
}
