package mailto_test

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/Tiliavir/caregiver-hours/internal/mailto"
)

func TestLink(t *testing.T) {
	msg := mailto.Message{
		To:      "family@example.com",
		Subject: "Caregiver Hours Report - March 2025",
		Body:    "Total Pay: $300.00\nNotes: a+b & c",
	}
	got := mailto.Link(msg)
	want := "mailto:family@example.com?subject=Caregiver%20Hours%20Report%20-%20March%202025" +
		"&body=Total%20Pay%3A%20%24300.00%0ANotes%3A%20a%2Bb%20%26%20c"
	if got != want {
		t.Errorf("Link =\n %s\nwant\n %s", got, want)
	}
}

func TestLinkLeavesComponentSafeCharacters(t *testing.T) {
	got := mailto.Link(mailto.Message{To: "a@b.c", Subject: "Hi!", Body: "it's (ok)*~ 100%"})
	want := "mailto:a@b.c?subject=Hi!&body=it's%20(ok)*~%20100%25"
	if got != want {
		t.Errorf("Link =\n %s\nwant\n %s", got, want)
	}
}

func TestLinkRoundTrip(t *testing.T) {
	body := "Date: Monday, March 3, 2025\nHours: 6\n\n=== ?&=#% (it's done!)*"
	link := mailto.Link(mailto.Message{To: "a@b.c", Subject: "s", Body: body})

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	if u.Scheme != "mailto" || u.Opaque != "a@b.c" {
		t.Errorf("scheme/opaque = %q/%q", u.Scheme, u.Opaque)
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if q.Get("body") != body {
		t.Errorf("body = %q, want %q", q.Get("body"), body)
	}
	if strings.Contains(u.RawQuery, "+") {
		t.Error("spaces must be encoded as %20, not +")
	}
}

func TestPrintComposer(t *testing.T) {
	var buf bytes.Buffer
	c := mailto.PrintComposer{W: &buf, WithBody: true}
	msg := mailto.Message{To: "a@b.c", Subject: "Hi", Body: "line"}
	if err := c.Compose(context.Background(), msg); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Subject: Hi\n\nline\n") {
		t.Errorf("missing body in output: %q", out)
	}
	if !strings.HasSuffix(out, mailto.Link(msg)+"\n") {
		t.Errorf("missing link in output: %q", out)
	}
}
