package chatwidget

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestLoader_BootstrapSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("// widget bootstrap"))
	}))
	defer srv.Close()

	l := NewLoader("http://backend/api/chat", nil,
		WithBootstrapURL(srv.URL), WithHTTPClient(srv.Client()))

	if l.State() != StateNotRequested {
		t.Errorf("expected not requested, got %s", l.State())
	}

	w, err := l.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if w == nil {
		t.Fatal("expected a widget")
	}
	if l.State() != StateReady {
		t.Errorf("expected ready, got %s", l.State())
	}

	again, err := l.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again != w {
		t.Error("second load must hand out the same widget")
	}
}

func TestLoader_BootstrapFailureIsPermanent(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := NewLoader("http://backend/api/chat", nil,
		WithBootstrapURL(srv.URL), WithHTTPClient(srv.Client()),
		WithLogf(func(string, ...any) {}))

	if _, err := l.Load(context.Background()); err != ErrStillLoading {
		t.Fatalf("expected ErrStillLoading, got %v", err)
	}
	if l.State() != StateLoading {
		t.Errorf("a failed bootstrap must stay loading, got %s", l.State())
	}

	// No retry: later calls fail fast without touching the network.
	if _, err := l.Load(context.Background()); err != ErrStillLoading {
		t.Fatalf("expected ErrStillLoading on repeat, got %v", err)
	}
	if n := fetches.Load(); n != 1 {
		t.Errorf("expected a single bootstrap fetch, got %d", n)
	}
}

func TestLoader_StateStrings(t *testing.T) {
	for state, want := range map[State]string{
		StateNotRequested:  "not requested",
		StateLoading:       "loading",
		StateModuleLoading: "module loading",
		StateReady:         "ready",
	} {
		if got := state.String(); got != want {
			t.Errorf("State(%d): expected %q, got %q", state, want, got)
		}
	}
}

func TestRemoteWidget_SendAssemblesStream(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"type":"text-delta","delta":"You have "}` + "\n\n"))
		w.Write([]byte(`data: {"type":"text-delta","delta":"3 tasks."}` + "\n\n"))
		w.Write([]byte("data: {\"type\":\"finish\"}\n\n"))
	}))
	defer srv.Close()

	sign := func(req *http.Request) { req.Header.Set("Authorization", "Bearer tok") }
	w := newRemoteWidget(srv.URL, sign, srv.Client())

	var deltas []string
	finished := false
	w.OnEvent(func(ev Event) {
		switch ev.Type {
		case "text-delta":
			deltas = append(deltas, ev.Delta)
		case "finish":
			finished = true
		}
	})

	reply, err := w.Send(context.Background(), "how many tasks do I have?")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "You have 3 tasks." {
		t.Errorf("unexpected reply %q", reply)
	}
	if len(deltas) != 2 {
		t.Errorf("expected 2 delta events, got %v", deltas)
	}
	if !finished {
		t.Error("expected a finish event")
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("request was not signed, got %q", gotAuth)
	}
}

func TestRemoteWidget_IgnoresNonDataLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(": keepalive\n\n"))
		w.Write([]byte("event: message\n"))
		w.Write([]byte(`data: {"type":"text-delta","delta":"ok"}` + "\n\n"))
		w.Write([]byte("data: not json\n\n"))
	}))
	defer srv.Close()

	w := newRemoteWidget(srv.URL, nil, srv.Client())
	reply, err := w.Send(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "ok" {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestRemoteWidget_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer srv.Close()

	w := newRemoteWidget(srv.URL, nil, srv.Client())
	if _, err := w.Send(context.Background(), "hi"); err == nil {
		t.Fatal("expected an error")
	}
}
