package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSnippet(t *testing.T) {
	if got := snippet("a short reply", 40); got != "a short reply" {
		t.Errorf("short string should pass through, got %q", got)
	}

	if got := snippet("line one\nline two", 40); got != "line one line two" {
		t.Errorf("newlines should collapse to spaces, got %q", got)
	}

	long := strings.Repeat("über", 30)
	got := snippet(long, 10)
	if !utf8.ValidString(got) {
		t.Errorf("snippet produced invalid UTF-8: %q", got)
	}
	if want := 10 + len("..."); utf8.RuneCountInString(got) != want {
		t.Errorf("snippet kept %d runes, want %d", utf8.RuneCountInString(got), want)
	}
}
