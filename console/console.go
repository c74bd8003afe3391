// Package console collects the report lines of an import.
//
// It stands for the import window: importers append lines to it, and the
// command line renders it to the terminal or exports it as HTML.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Tone qualifies a line reporting a change.
type Tone int

const (
	Plain Tone = iota
	Gain
	Loss
)

func (t Tone) String() string {
	switch t {
	case Gain:
		return "gain"
	case Loss:
		return "loss"
	}
	return ""
}

// ToneOf returns Gain when newValue is greater than oldValue, Loss when it is lower.
func ToneOf(newValue, oldValue decimal.Decimal) Tone {
	switch newValue.Cmp(oldValue) {
	case 1:
		return Gain
	case -1:
		return Loss
	}
	return Plain
}

// Entry is a single console line.
type Entry struct {
	Tone Tone
	Text string
}

// Log is an import console. Its zero value is ready to use.
type Log struct {
	entries       []Entry
	commitEnabled bool
}

// AddText appends a plain line.
func (l *Log) AddText(text string) { l.AddTone(Plain, text) }

// AddTone appends a line with a tone.
func (l *Log) AddTone(tone Tone, text string) {
	l.entries = append(l.entries, Entry{Tone: tone, Text: text})
}

// ClearText removes all lines.
func (l *Log) ClearText() { l.entries = nil }

// EnableCommitButton records whether staged changes can be committed.
func (l *Log) EnableCommitButton(enable bool) { l.commitEnabled = enable }

// CommitEnabled reports the last value passed to EnableCommitButton.
func (l *Log) CommitEnabled() bool { return l.commitEnabled }

// Entries returns the lines in order.
func (l *Log) Entries() []Entry { return l.entries }

// Text returns all lines, newline separated.
func (l *Log) Text() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

var (
	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Render writes the lines to w, coloring gains and losses.
func (l *Log) Render(w io.Writer) error {
	for _, e := range l.entries {
		text := e.Text
		switch e.Tone {
		case Gain:
			text = gainStyle.Render(text)
		case Loss:
			text = lossStyle.Render(text)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}
