package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompt_YesNoVariants(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"No\n", false},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		prompt := NewPrompt(strings.NewReader(tc.input), &out)

		got, err := prompt.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("confirm(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPrompt_RepromptsOnGarbage(t *testing.T) {
	var out bytes.Buffer
	prompt := NewPrompt(strings.NewReader("maybe\n\ny\n"), &out)

	got, err := prompt.Confirm("Proceed?")
	if err != nil || !got {
		t.Fatalf("got %v, %v", got, err)
	}
	if !strings.Contains(out.String(), "Invalid input") {
		t.Error("expected a reprompt message")
	}
}

func TestPrompt_EOFMeansNo(t *testing.T) {
	var out bytes.Buffer
	prompt := NewPrompt(strings.NewReader(""), &out)

	got, err := prompt.Confirm("Confirm purchase?")
	if err != nil {
		t.Fatalf("EOF must not be an error: %v", err)
	}
	if got {
		t.Error("an abandoned session must never confirm")
	}
}

func TestPrompt_LastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	prompt := NewPrompt(strings.NewReader("yes"), &out)

	got, err := prompt.Confirm("Proceed?")
	if err != nil || !got {
		t.Fatalf("got %v, %v", got, err)
	}
}
