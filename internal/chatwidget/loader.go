package chatwidget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// State is the loader's lifecycle. There is no transition back to an earlier
// state except a process restart; StateReady is terminal.
type State int

const (
	StateNotRequested State = iota
	StateLoading
	StateModuleLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateNotRequested:
		return "not requested"
	case StateLoading:
		return "loading"
	case StateModuleLoading:
		return "module loading"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// DefaultBootstrapURL is the hosted widget bootstrap.
const DefaultBootstrapURL = "https://cdn.platform.openai.com/deployments/chatkit/chatkit.js"

// ErrStillLoading is returned when the widget was requested but never became
// ready. A failed bootstrap leaves the loader here for good; no retry.
var ErrStillLoading = errors.New("chat widget still loading")

// Loader fetches the widget bootstrap exactly once per process and hands out
// the ready widget. Bootstrap failure is logged and non-fatal: the loader
// stays in StateLoading indefinitely.
type Loader struct {
	bootstrapURL string
	chatURL      string
	sign         SignFunc
	httpc        *http.Client
	logf         func(format string, args ...any)

	mu        sync.Mutex
	state     State
	requested bool
	widget    Widget
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient overrides the HTTP client used for the bootstrap fetch and
// the widget's own requests.
func WithHTTPClient(h *http.Client) LoaderOption {
	return func(l *Loader) { l.httpc = h }
}

// WithBootstrapURL overrides the hosted bootstrap location.
func WithBootstrapURL(u string) LoaderOption {
	return func(l *Loader) { l.bootstrapURL = u }
}

// WithLogf overrides the failure logger.
func WithLogf(logf func(format string, args ...any)) LoaderOption {
	return func(l *Loader) { l.logf = logf }
}

// NewLoader creates a loader for the widget talking to chatURL, signing each
// request with sign.
func NewLoader(chatURL string, sign SignFunc, opts ...LoaderOption) *Loader {
	l := &Loader{
		bootstrapURL: DefaultBootstrapURL,
		chatURL:      chatURL,
		sign:         sign,
		httpc:        &http.Client{Timeout: 30 * time.Second},
		logf:         log.Printf,
		state:        StateNotRequested,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the loader's current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load returns the ready widget, performing the one-time bootstrap on first
// call. On bootstrap failure the error is logged, ErrStillLoading is
// returned, and every later call returns ErrStillLoading without refetching.
func (l *Loader) Load(ctx context.Context) (Widget, error) {
	l.mu.Lock()
	if l.state == StateReady {
		w := l.widget
		l.mu.Unlock()
		return w, nil
	}
	if l.requested {
		l.mu.Unlock()
		return nil, ErrStillLoading
	}
	l.requested = true
	l.state = StateLoading
	l.mu.Unlock()

	if err := l.fetchBootstrap(ctx); err != nil {
		l.logf("chatwidget: failed to load widget bootstrap: %v", err)
		return nil, ErrStillLoading
	}

	l.mu.Lock()
	l.state = StateModuleLoading
	l.mu.Unlock()

	w := newRemoteWidget(l.chatURL, l.sign, l.httpc)

	l.mu.Lock()
	l.widget = w
	l.state = StateReady
	l.mu.Unlock()
	return w, nil
}

// fetchBootstrap performs the script-tag equivalent: one GET of the hosted
// bootstrap, success judged by status alone.
func (l *Loader) fetchBootstrap(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.bootstrapURL, nil)
	if err != nil {
		return err
	}
	resp, err := l.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bootstrap fetch: status %d", resp.StatusCode)
	}
	return nil
}
