package session

import (
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// ViewLimit is how many recent entries the history view shows.
	ViewLimit = 3
	// PreviewWidth is how many characters of output each history row shows.
	PreviewWidth = 100
	// ContinuationMarker follows every truncated output preview.
	ContinuationMarker = "..."
)

// Entry is one successful generation.
type Entry struct {
	Input      string    `json:"input"`
	Output     string    `json:"output"`
	Preference string    `json:"preference"`
	CreatedAt  time.Time `json:"created_at"`
}

// History is an append-only, unbounded record of one session's generations.
type History struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds e as the most recent entry.
func (h *History) Append(e Entry) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	h.mu.Lock()
	h.entries = append(h.entries, e)
	h.mu.Unlock()
}

// Len reports the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Last returns up to n most recent entries, oldest first.
func (h *History) Last(n int) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || len(h.entries) == 0 {
		return nil
	}
	start := len(h.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, len(h.entries)-start)
	copy(out, h.entries[start:])
	return out
}

// Summary is one display row of the history view.
type Summary struct {
	Number  int    `json:"number"`
	Input   string `json:"input"`
	Preview string `json:"preview"`
}

// Summaries numbers entries from 1 and truncates each output to width characters.
func Summaries(entries []Entry, width int) []Summary {
	out := make([]Summary, len(entries))
	for i, e := range entries {
		out[i] = Summary{
			Number:  i + 1,
			Input:   e.Input,
			Preview: Truncate(e.Output, width) + ContinuationMarker,
		}
	}
	return out
}

// Truncate returns at most width characters of s without splitting a UTF-8 sequence.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	i := 0
	for pos := range s {
		if i == width {
			return s[:pos]
		}
		i++
	}
	return s
}
