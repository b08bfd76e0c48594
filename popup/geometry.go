package popup

// EdgePadding is the minimum gap kept between the popup and the viewport's
// right and bottom edges.
const EdgePadding = 5

// AssumedSize is the popup size Place is given when the handler does not ask
// for measured placement.
var AssumedSize = Size{Width: 200, Height: 200}

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Coords are the screen-space edges of a document offset as reported by the
// editor's layout. A collapsed caret has Left == Right.
type Coords struct {
	Top, Bottom int
	Left, Right int
}

type Size struct {
	Width, Height int
}

// Position is the top-left corner applied to a container.
type Position struct {
	Top, Left int
}
