package popup

import (
	"slices"
	"sort"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// Document is the screen containers are attached to. It knows the viewport
// size and composites mounted containers over the host's rendered view.
type Document struct {
	mu     sync.RWMutex
	width  int
	height int
	layers []*Container
}

func NewDocument(width, height int) *Document {
	d := &Document{}
	d.SetSize(width, height)
	return d
}

func (d *Document) SetSize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width = max(width, 0)
	d.height = max(height, 0)
}

func (d *Document) Size() Size {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Size{Width: d.width, Height: d.height}
}

// Attach appends c to the document, moving it from any other document.
func (d *Document) Attach(c *Container) {
	if c == nil {
		return
	}
	d.mu.Lock()
	prev := c.setDocument(d)
	if !slices.Contains(d.layers, c) {
		d.layers = append(d.layers, c)
	}
	d.mu.Unlock()

	if prev != nil && prev != d {
		prev.remove(c)
	}
}

func (d *Document) Contains(c *Container) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Contains(d.layers, c)
}

// Len is the number of attached containers.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.layers)
}

func (d *Document) remove(c *Container) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.layers = slices.DeleteFunc(d.layers, func(l *Container) bool { return l == c })
}

// stacked returns the attached containers from bottom to top. Equal z-index
// keeps attach order.
func (d *Document) stacked() []*Container {
	d.mu.RLock()
	out := slices.Clone(d.layers)
	d.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex() < out[j].ZIndex() })
	return out
}

// Compose draws every mounted container over base. Layers are clipped to
// base rather than moved, so each one stays at its Position and whatever
// falls outside base is dropped.
func (d *Document) Compose(base string) string {
	width, height := lipgloss.Size(base)
	for _, c := range d.stacked() {
		l, ok := c.snapshot()
		if !ok {
			continue
		}
		fg, x, y, ok := clip(l, width, height)
		if !ok {
			continue
		}
		// The extra empty row keeps base taller than fg and never single-line,
		// which Composite would otherwise replace with fg wholesale.
		out := overlay.Composite(fg, base+"\n", overlay.Left, overlay.Top, x, y)
		base = strings.TrimSuffix(out, "\n")
	}
	return base
}

// clip cuts l down to the part that lies inside a width x height screen and
// returns it with its on-screen offset.
func clip(l layer, width, height int) (view string, x, y int, ok bool) {
	lines := strings.Split(l.view, "\n")
	top, left := l.position.Top, l.position.Left

	if top < 0 {
		lines = lines[min(-top, len(lines)):]
		top = 0
	}
	if rows := height - top; len(lines) > rows {
		lines = lines[:max(rows, 0)]
	}
	cols := width - max(left, 0)
	if len(lines) == 0 || cols <= 0 {
		return "", 0, 0, false
	}
	for i, line := range lines {
		if left < 0 {
			line = ansi.TruncateLeft(line, -left, "")
		}
		lines[i] = ansi.Truncate(line, cols, "")
	}
	return strings.Join(lines, "\n"), max(left, 0), top, true
}

// Update tracks window resizes and forwards mouse events to the topmost
// container under the pointer.
func (d *Document) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)
	case tea.MouseMsg:
		layers := d.stacked()
		for i := len(layers) - 1; i >= 0; i-- {
			if cmd, ok := layers[i].hit(msg.X, msg.Y, msg); ok {
				return cmd
			}
		}
	}
	return nil
}
