package chatcolor_test

import (
	"strings"
	"testing"

	"github.com/mickamy/craftd-proxy/chatcolor"
)

func TestRenderInsertsAndResetsSGR(t *testing.T) {
	t.Parallel()
	got := chatcolor.Render("§chello§r")
	if !strings.Contains(got, "\x1b[91m") {
		t.Fatalf("got %q, want a red SGR sequence", got)
	}
	if !strings.Contains(got, "hello") {
		t.Fatalf("got %q, want to contain hello", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Fatalf("got %q, want reset at the end", got)
	}
}

func TestRenderPlainTextUnchanged(t *testing.T) {
	t.Parallel()
	got := chatcolor.Render("plain text")
	if got != "plain text" {
		t.Fatalf("got %q, want unchanged", got)
	}
}

func TestStripRemovesEscapesOnly(t *testing.T) {
	t.Parallel()
	got := chatcolor.Strip("§chello §r§lworld")
	if got != "hello world" {
		t.Fatalf("got %q, want %q", got, "hello world")
	}
}

func TestUnrecognizedEscapeDigitPassesThrough(t *testing.T) {
	t.Parallel()
	got := chatcolor.Render("§zhello")
	if got != "§zhello" {
		t.Fatalf("got %q, want unchanged (z is not a recognized code)", got)
	}
}
