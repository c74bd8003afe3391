package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
)

// printMarkdown renders md for the terminal. It falls back to the raw text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Debug("cannot render markdown", "err", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
