package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by wrap width + style. Creating a renderer with
	// WithAutoStyle can trigger terminal capability queries that may block on
	// some terminals, so a fixed style is chosen up front and cached.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TODO_TUI_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// COLORFGBG is often "fg;bg"; common xterm palette puts light colors at
	// 7-15. Prefer this over terminal queries to avoid blocking.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg >= 7 {
				return "light"
			}
			return "dark"
		}
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
