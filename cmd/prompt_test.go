package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestLinePrompterConfirm(t *testing.T) {
	tests := []struct {
		input     string
		assumeYes bool
		want      bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"maybe\n", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := &linePrompter{in: bufio.NewReader(strings.NewReader(tt.input)), out: &out, assumeYes: tt.assumeYes}
		if got := p.Confirm("Send?"); got != tt.want {
			t.Errorf("Confirm(input=%q, yes=%v) = %v, want %v", tt.input, tt.assumeYes, got, tt.want)
		}
		if !strings.HasPrefix(out.String(), "Send?") {
			t.Errorf("question not shown: %q", out.String())
		}
	}
}

func TestLinePrompterNotify(t *testing.T) {
	var out bytes.Buffer
	p := &linePrompter{out: &out}
	p.Notify("hello")
	if out.String() != "hello\n" {
		t.Errorf("Notify wrote %q", out.String())
	}
}
