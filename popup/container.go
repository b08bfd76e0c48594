package popup

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// DefaultZIndex stacks popups above ordinary layers.
const DefaultZIndex = 1000

// Content is something a Container can display.
type Content interface {
	View() string
	Update(msg tea.Msg) tea.Cmd
}

// Container is a focusable, absolutely positioned layer. It is detached from
// any Document when created.
type Container struct {
	mu sync.Mutex

	zIndex    int
	focusable bool
	logger    *zap.Logger

	doc        *Document
	position   Position
	positioned bool
	content    Content

	// generation is bumped by every Render and by Destroy. A pending render
	// only mounts while its generation is current.
	generation uint64
}

type Option func(*Container)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithZIndex(z int) Option {
	return func(c *Container) { c.zIndex = z }
}

// Create allocates a detached container.
func Create(opts ...Option) *Container {
	c := &Container{
		zIndex:    DefaultZIndex,
		focusable: true,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Destroy unmounts the container's content, detaches it from its document
// and invalidates renders still waiting for candidates. It is safe to call on
// a container that was never rendered, and more than once.
func Destroy(c *Container) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.generation++
	c.content = nil
	doc := c.doc
	c.doc = nil
	c.mu.Unlock()

	if doc != nil {
		doc.remove(c)
	}
	c.logger.Debug("completion popup destroyed", zap.Bool("was_attached", doc != nil))
}

func (c *Container) ZIndex() int { return c.zIndex }

func (c *Container) Focusable() bool { return c.focusable }

// Position returns the last position applied by Render.
func (c *Container) Position() (Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position, c.positioned
}

func (c *Container) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content != nil
}

// Document returns the document the container is attached to, or nil.
func (c *Container) Document() *Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// View renders the mounted content, or "" when nothing is mounted.
func (c *Container) View() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.content == nil {
		return ""
	}
	return c.content.View()
}

func (c *Container) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

func (c *Container) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.generation
}

// viewport returns the size of the attached document.
func (c *Container) viewport() (Size, bool) {
	c.mu.Lock()
	doc := c.doc
	c.mu.Unlock()
	if doc == nil {
		return Size{}, false
	}
	return doc.Size(), true
}

// mount applies pos and content if gen is still current.
func (c *Container) mount(gen uint64, pos Position, content Content) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.position = pos
	c.positioned = true
	c.content = content
	return true
}

type layer struct {
	position Position
	view     string
}

func (c *Container) snapshot() (layer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.content == nil || !c.positioned {
		return layer{}, false
	}
	view := c.content.View()
	if view == "" {
		return layer{}, false
	}
	return layer{position: c.position, view: view}, true
}

// hit forwards msg to the content when (x, y) lies inside the rendered box.
func (c *Container) hit(x, y int, msg tea.Msg) (tea.Cmd, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.content == nil || !c.positioned {
		return nil, false
	}
	view := c.content.View()
	w, h := lipgloss.Size(view)
	if x < c.position.Left || x >= c.position.Left+w || y < c.position.Top || y >= c.position.Top+h {
		return nil, false
	}
	return c.content.Update(msg), true
}

func (c *Container) setDocument(d *Document) (prev *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev = c.doc
	c.doc = d
	return prev
}
