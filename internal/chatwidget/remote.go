package chatwidget

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// remoteWidget speaks the widget's chat protocol: a POST of the message
// history, answered with a server-sent event stream of text deltas.
type remoteWidget struct {
	url   string
	sign  SignFunc
	httpc *http.Client

	mu       sync.Mutex
	handlers []func(Event)
}

func newRemoteWidget(url string, sign SignFunc, httpc *http.Client) *remoteWidget {
	return &remoteWidget{url: url, sign: sign, httpc: httpc}
}

func (w *remoteWidget) OnEvent(fn func(Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, fn)
}

func (w *remoteWidget) emit(ev Event) {
	w.mu.Lock()
	handlers := make([]func(Event), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()
	for _, fn := range handlers {
		fn(ev)
	}
}

type chatRequest struct {
	Messages []chatRequestMessage `json:"messages"`
}

type chatRequestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// streamEvent is one SSE data payload from the chat endpoint.
type streamEvent struct {
	Type  string `json:"type"`
	Delta string `json:"delta"`
}

// Send posts the user message and assembles the streamed assistant reply.
// The request is signed at call time, so a refreshed token is picked up.
func (w *remoteWidget) Send(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Messages: []chatRequestMessage{{Role: "user", Content: text}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if w.sign != nil {
		w.sign(req)
	}

	resp, err := w.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request failed: status %d", resp.StatusCode)
	}

	var reply strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev streamEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			continue
		}
		switch ev.Type {
		case "text-delta":
			reply.WriteString(ev.Delta)
			w.emit(Event{Type: ev.Type, Delta: ev.Delta})
		case "finish":
			w.emit(Event{Type: ev.Type})
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return reply.String(), nil
}
