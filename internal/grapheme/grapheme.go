// Package grapheme holds grapheme cluster helpers shared by the text view.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// First returns the first cluster of text.
func First(text string) string {
	if text == "" {
		return ""
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	return cluster
}

// Last returns the last cluster of text.
func Last(text string) string {
	clusters := Split(text)
	if len(clusters) == 0 {
		return ""
	}
	return clusters[len(clusters)-1]
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsWord reports whether cluster starts with a letter, digit or underscore.
// Combining marks following the base rune are part of the word.
func IsWord(cluster string) bool {
	for _, r := range cluster {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}

// CellWidth is the terminal width of cluster when drawn at column col.
// Tabs advance to the next multiple of tabWidth.
func CellWidth(cluster string, col, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - col%tabWidth
	}

	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 0)
}

// Width is the terminal width of text starting at column 0.
func Width(text string, tabWidth int) int {
	col := 0
	for _, cluster := range Split(text) {
		col += CellWidth(cluster, col, tabWidth)
	}
	return col
}
