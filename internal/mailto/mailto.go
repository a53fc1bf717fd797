// Package mailto hands a composed report over to the platform mail client
// via a mailto: link.
package mailto

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/browser"
)

// Message is a mail ready to be composed.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Composer opens a mail composer pre-filled with a message.
type Composer interface {
	Compose(ctx context.Context, msg Message) error
}

// Link builds the mailto: URI for msg. Subject and body are percent-encoded
// like encodeURIComponent: %20 for spaces, and !'()*~ left as they are.
func Link(msg Message) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", msg.To, encode(msg.Subject), encode(msg.Body))
}

// componentUnescaper undoes QueryEscape where encodeURIComponent leaves
// characters alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encode(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// BrowserComposer opens the link with the operating system's URL handler.
type BrowserComposer struct{}

// Compose implements Composer.
func (BrowserComposer) Compose(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := browser.OpenURL(Link(msg)); err != nil {
		return fmt.Errorf("opening mail composer: %w", err)
	}
	return nil
}

// PrintComposer writes the link, and optionally the plain body, to W instead
// of opening a mail client.
type PrintComposer struct {
	W        io.Writer
	WithBody bool
}

// Compose implements Composer.
func (p PrintComposer) Compose(_ context.Context, msg Message) error {
	if p.WithBody {
		if _, err := fmt.Fprintf(p.W, "To: %s\nSubject: %s\n\n%s\n", msg.To, msg.Subject, msg.Body); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.W, Link(msg))
	return err
}
