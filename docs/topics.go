// Package docs holds the mdimport documentation topics, one markdown file
// per topic.
package docs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var files embed.FS

// Index is the topic that introduces the others.
const Index = "readme"

// All stands for every topic but the index.
const All = "*"

// ErrUnknownTopic is returned for a topic without a markdown file.
var ErrUnknownTopic = errors.New("unknown topic")

// Names returns the sorted topic names, without the index.
func Names() []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".md"); ok && name != Index {
			names = append(names, name)
		}
	}
	return names
}

// Topic returns the markdown of the named topic.
func Topic(name string) (string, error) {
	md, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("%w %q, try one of: %s", ErrUnknownTopic, name, strings.Join(Names(), ", "))
	}
	return string(md), nil
}

// Topics returns the markdown of the named topics separated by a blank line.
func Topics(names ...string) (string, error) {
	var parts []string
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			expanded = Names()
		}
		for _, n := range expanded {
			md, err := Topic(n)
			if err != nil {
				return "", err
			}
			parts = append(parts, strings.TrimRight(md, "\n"))
		}
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
