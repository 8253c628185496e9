// Package notify delivers transient user-facing notices: the outcome of
// a save, a duplicate warning, a database error. Operations report here
// in addition to their return values, so every surface (CLI, watch view)
// shows the same messages.
package notify

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Notifier receives operation outcomes.
type Notifier interface {
	Success(format string, a ...any)
	Info(format string, a ...any)
	Errorf(format string, a ...any)
}

// CLI prints notices to the terminal in the house style.
type CLI struct{}

// Success prints a green check line.
func (CLI) Success(format string, a ...any) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// Info prints a cyan info line.
func (CLI) Info(format string, a ...any) {
	fmt.Println(color.CyanString("·"), fmt.Sprintf(format, a...))
}

// Errorf prints a red error line to stderr.
func (CLI) Errorf(format string, a ...any) {
	fmt.Fprintln(os.Stderr, color.RedString("✗"), fmt.Sprintf(format, a...))
}

// Nop discards all notices.
type Nop struct{}

func (Nop) Success(string, ...any) {}
func (Nop) Info(string, ...any)    {}
func (Nop) Errorf(string, ...any)  {}

// Memory records notices for assertions in tests.
type Memory struct {
	mu        sync.Mutex
	Successes []string
	Infos     []string
	Errors    []string
}

func (m *Memory) Success(format string, a ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, fmt.Sprintf(format, a...))
}

func (m *Memory) Info(format string, a ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Infos = append(m.Infos, fmt.Sprintf(format, a...))
}

func (m *Memory) Errorf(format string, a ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, fmt.Sprintf(format, a...))
}
