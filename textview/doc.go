// Package textview provides a small Bubble Tea text editor that reports caret
// coordinates in screen cells, so a completion popup can be anchored to it.
//
// Document offsets are rune offsets into the text. Lines wider than the view
// are clipped; there is no soft wrap and no horizontal scrolling.
package textview
