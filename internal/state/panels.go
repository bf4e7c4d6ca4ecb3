package state

import "sync"

// Panel identifies one of the tool selector popovers.
type Panel int

const (
	PenPanel Panel = iota
	EraserPanel
)

func (p Panel) String() string {
	switch p {
	case PenPanel:
		return "pen"
	case EraserPanel:
		return "eraser"
	}
	return "unknown"
}

// Area is a rectangle in absolute window coordinates.
type Area struct {
	X, Y          float32
	Width, Height float32
}

func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X <= a.X+a.Width &&
		p.Y >= a.Y && p.Y <= a.Y+a.Height
}

// Panels tracks which popovers are open and where they are on screen. Each
// panel opens and closes on its own.
type Panels struct {
	mu       sync.Mutex
	open     map[Panel]bool
	areas    map[Panel]Area
	OnChange func(Panel, bool)
}

func NewPanels() *Panels {
	return &Panels{
		open:  make(map[Panel]bool),
		areas: make(map[Panel]Area),
	}
}

func (p *Panels) IsOpen(panel Panel) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open[panel]
}

func (p *Panels) Toggle(panel Panel) {
	p.mu.Lock()
	open := !p.open[panel]
	p.mu.Unlock()
	p.set(panel, open)
}

func (p *Panels) Close(panel Panel) { p.set(panel, false) }

// SetArea records where an open panel (and its toggle button) is drawn, so a
// press inside it is not treated as an outside click.
func (p *Panels) SetArea(panel Panel, a Area) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.areas[panel] = a
}

// PointerDown closes every open panel whose area does not contain pt. Panels
// that are already closed are left alone.
func (p *Panels) PointerDown(pt Point) {
	p.mu.Lock()
	var closing []Panel
	for panel, open := range p.open {
		if !open {
			continue
		}
		if area, ok := p.areas[panel]; ok && area.Contains(pt) {
			continue
		}
		closing = append(closing, panel)
	}
	p.mu.Unlock()

	for _, panel := range closing {
		p.set(panel, false)
	}
}

func (p *Panels) set(panel Panel, open bool) {
	p.mu.Lock()
	changed := p.open[panel] != open
	p.open[panel] = open
	onChange := p.OnChange
	p.mu.Unlock()

	if changed && onChange != nil {
		onChange(panel, open)
	}
}
