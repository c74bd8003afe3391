package console

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// markdownEscaper escapes the characters that markdown could interpret.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`,
	`<`, `\<`, `>`, `\>`, `#`, `\#`, `|`, `\|`, `&`, `\&`,
)

// escapeMarkdown escapes text so that markdown renders it as is, including
// lines that would otherwise start a list or a setext heading.
func escapeMarkdown(text string) string {
	lines := strings.Split(markdownEscaper.Replace(text), "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]
		if n := blockMarker(body); n > 0 {
			lines[i] = indent + body[:n-1] + `\` + body[n-1:]
		}
	}
	return strings.Join(lines, "\n")
}

// blockMarker returns the length of the block marker that starts line, or 0.
// The marker ends with its punctuation character.
func blockMarker(line string) int {
	if line == "" {
		return 0
	}
	switch line[0] {
	case '-', '+', '=':
		return 1
	}
	n := 0
	for n < len(line) && n < 9 && line[n] >= '0' && line[n] <= '9' {
		n++
	}
	if n > 0 && n < len(line) && (line[n] == '.' || line[n] == ')') {
		return n + 1
	}
	return 0
}

// Markdown returns one paragraph per line. Lines with a tone are wrapped
// in a span with the tone as class.
func (l *Log) Markdown() string {
	var sb strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		text := escapeMarkdown(e.Text)
		if e.Tone != Plain {
			text = fmt.Sprintf(`<span class="%s">%s</span>`, e.Tone, text)
		}
		sb.WriteString(text)
	}
	sb.WriteString("\n")
	return sb.String()
}

// HTML converts Markdown to an HTML fragment.
func (l *Log) HTML() (string, error) {
	md := goldmark.New(goldmark.WithRendererOptions(ghtml.WithUnsafe()))
	var buf bytes.Buffer
	if err := md.Convert([]byte(l.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("cannot convert console to html: %w", err)
	}
	return buf.String(), nil
}

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
.gain { color: green; }
.loss { color: red; }
</style>
</head>
<body>
`

// WriteHTML writes a standalone HTML document with the console lines.
func (l *Log) WriteHTML(w io.Writer, title string) error {
	body, err := l.HTML()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, htmlHeader, html.EscapeString(title)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}
	_, err = io.WriteString(w, "</body>\n</html>\n")
	return err
}
