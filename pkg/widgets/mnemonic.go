package widgets

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/go-drift/retain/pkg/input"
)

// ParseMnemonic strips the mnemonic marker from text. It returns the plain
// text, the grapheme cluster index of the marked character or -1, and the
// key that triggers it, which is KeyNone for characters without a key.
// Only the first marker counts; "__" is a literal underscore.
func ParseMnemonic(text string) (plain string, index int, key input.Key) {
	var sb strings.Builder
	index, key = -1, input.KeyNone
	marked := false
	clusters := 0
	state := -1
	for rest := text; rest != ""; {
		var c string
		c, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if c == "_" {
			switch {
			case strings.HasPrefix(rest, "_"):
				rest, state = rest[1:], -1
			case index < 0 && !marked && rest != "":
				marked = true
				continue
			}
		}
		if marked {
			marked = false
			index = clusters
			r, _ := utf8.DecodeRuneInString(c)
			if k, ok := input.RuneKey(r); ok {
				key = k
			}
		}
		sb.WriteString(c)
		clusters++
	}
	return sb.String(), index, key
}
