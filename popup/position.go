package popup

// Place anchors a popup of the given size below and to the right of caret.
//
// The popup is pulled back from the viewport's bottom and right edges by
// EdgePadding, then pushed back inside the editor's top and left edges. When
// both cannot hold, the editor edge wins and the popup may overflow the
// viewport.
func Place(editor Rect, caret Coords, popup Size, viewport Size) Position {
	maxTop := min(caret.Bottom, viewport.Height-popup.Height-EdgePadding)
	maxLeft := min(caret.Right, viewport.Width-popup.Width-EdgePadding)
	return Position{
		Top:  max(editor.Y, maxTop),
		Left: max(editor.X, maxLeft),
	}
}
