package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ConsoleLevel classifies a console line for the browser
type ConsoleLevel string

const (
	LevelInfo    ConsoleLevel = "info"
	LevelWarning ConsoleLevel = "warning"
	LevelError   ConsoleLevel = "error"
)

// ConsoleMessage is one render log line forwarded to the browser
type ConsoleMessage struct {
	RenderID  string       `json:"renderId"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Level     ConsoleLevel `json:"level"`
}

// WebLogger is the core.Logger handed to a render started from the web.
// Lines go to the render's console channel, if any, and to the server log.
type WebLogger struct {
	renderID  string
	console   chan<- ConsoleMessage
	serverLog core.Logger
}

// NewWebLogger creates a logger for one render. Either sink may be nil;
// echo's logger satisfies core.Logger directly.
func NewWebLogger(renderID string, console chan<- ConsoleMessage, serverLog core.Logger) core.Logger {
	return &WebLogger{renderID: renderID, console: console, serverLog: serverLog}
}

// Printf never blocks the render: a full console channel drops the line.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if wl.serverLog != nil {
		wl.serverLog.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))
	}
	if wl.console == nil {
		return
	}

	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     levelOf(message),
	}
	select {
	case wl.console <- msg:
	default:
	}
}

func levelOf(message string) ConsoleLevel {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "error"):
		return LevelError
	case strings.HasPrefix(lower, "warning"):
		return LevelWarning
	default:
		return LevelInfo
	}
}
