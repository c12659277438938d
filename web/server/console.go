package server

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// consoleCapacity is the number of log lines kept for the web console
const consoleCapacity = 256

var (
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	levelTag   = regexp.MustCompile(`\[(DEBUG|INFO|NOTICE|WARNING|ERROR|CRITICAL)\]`)
)

// ConsoleMessage is one captured log line
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// Console keeps the most recent log lines in a ring buffer. It is an
// io.Writer meant to be installed as a log sink next to stderr.
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	next     int
	full     bool
}

// NewConsole creates an empty console
func NewConsole() *Console {
	return &Console{messages: make([]ConsoleMessage, consoleCapacity)}
}

// Write records every non-empty line of p
func (c *Console) Write(p []byte) (int, error) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(ansiEscape.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		level := "info"
		if m := levelTag.FindStringSubmatch(line); m != nil {
			level = strings.ToLower(m[1])
		}
		c.messages[c.next] = ConsoleMessage{Message: line, Timestamp: now, Level: level}
		c.next = (c.next + 1) % len(c.messages)
		if c.next == 0 {
			c.full = true
		}
	}
	return len(p), nil
}

// Messages returns the captured lines, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.full {
		return append([]ConsoleMessage(nil), c.messages[:c.next]...)
	}
	out := make([]ConsoleMessage, 0, len(c.messages))
	out = append(out, c.messages[c.next:]...)
	return append(out, c.messages[:c.next]...)
}
