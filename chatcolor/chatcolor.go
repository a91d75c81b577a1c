// Package chatcolor renders the protocol's "§"+hex color-escape
// sequences (as used in Chat, Disconnect, and sign text) as ANSI
// terminal output, for the packet inspector and any other
// terminal-facing display of wire strings.
package chatcolor

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const escape = '§'

// sgr maps each of the 16 color-escape hex digits to its terminal SGR
// foreground code, per the original palette (0-9, a-f).
var sgr = map[byte]string{
	'0': "30", '1': "34", '2': "32", '3': "36",
	'4': "31", '5': "35", '6': "33", '7': "37",
	'8': "90", '9': "94", 'a': "92", 'b': "96",
	'c': "91", 'd': "95", 'e': "93", 'f': "97",
}

const (
	reset       = "\x1b[0m"
	boldOn      = "1"
	underline   = "4"
	italic      = "3"
	strikethrough = "9"
	obfuscate   = "5" // rendered as blink; the closest ANSI analog
)

// format-only escape codes, distinct from the color-digit set above.
var formatCodes = map[byte]string{
	'k': obfuscate,
	'l': boldOn,
	'm': strikethrough,
	'n': underline,
	'o': italic,
	'r': "", // reset
}

// Render converts s's §-escape sequences into ANSI SGR sequences.
// Untrusted input is stripped of any pre-existing ANSI escapes first
// (via ansi.Strip) so chat text cannot smuggle in raw terminal
// control sequences of its own; only the codes this package emits for
// recognized §-sequences survive.
func Render(s string) string {
	s = ansi.Strip(s)

	var b strings.Builder
	open := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == escape && i+1 < len(runes) {
			code := byte(runes[i+1])
			if seq, ok := colorOrFormatSGR(code); ok {
				if open {
					b.WriteString(reset)
				}
				if seq == "" {
					open = false
				} else {
					b.WriteString("\x1b[" + seq + "m")
					open = true
				}
				i++
				continue
			}
		}
		b.WriteRune(r)
	}
	if open {
		b.WriteString(reset)
	}
	return b.String()
}

func colorOrFormatSGR(code byte) (string, bool) {
	if seq, ok := sgr[code]; ok {
		return seq, true
	}
	if seq, ok := formatCodes[code]; ok {
		return seq, true
	}
	return "", false
}

// Strip removes every §-escape sequence from s, leaving plain text.
func Strip(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == escape && i+1 < len(runes) {
			if _, ok := colorOrFormatSGR(byte(runes[i+1])); ok {
				i++
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
