package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// linePrompter asks yes/no questions on a line-oriented terminal.
type linePrompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// Confirm returns true only for an explicit "y" or "yes". End of input
// counts as no.
func (p *linePrompter) Confirm(question string) bool {
	if p.assumeYes {
		fmt.Fprintf(p.out, "%s yes\n", question)
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *linePrompter) Notify(message string) {
	fmt.Fprintln(p.out, message)
}
