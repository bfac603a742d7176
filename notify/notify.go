// Package notify shows short user-facing messages after an operation completes.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

var (
	Green  = lipgloss.Color("2")
	Blue   = lipgloss.Color("4")
	Red    = lipgloss.Color("1")
	Gray   = lipgloss.Color("8")
	badges = map[Level]lipgloss.Style{
		LevelSuccess: lipgloss.NewStyle().Bold(true).Foreground(Green),
		LevelInfo:    lipgloss.NewStyle().Bold(true).Foreground(Blue),
		LevelError:   lipgloss.NewStyle().Bold(true).Foreground(Red),
	}
	textStyle = lipgloss.NewStyle().Foreground(Gray)
)

// Console writes one styled line per message.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Success(msg string) { c.print(LevelSuccess, msg) }
func (c *Console) Info(msg string)    { c.print(LevelInfo, msg) }
func (c *Console) Error(msg string)   { c.print(LevelError, msg) }

func (c *Console) print(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", badges[level].Render(fmt.Sprintf("[%s]", level)), textStyle.Render(msg))
}

type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every message it is given.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Info(msg string)    { r.add(LevelInfo, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: msg})
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
