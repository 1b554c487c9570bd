// Package courselist is the course panel of a programme: loading its data,
// wrapping course mutations with a single notification each, grouping the
// courses for display and summarising taken credits.
package courselist

// Panel is the open/closed state of the course panel. An embedded panel has
// no border or toggle and is always open.
type Panel struct {
	Open     bool
	Embedded bool
}

// NewPanel returns a panel in the given state.
func NewPanel(open, embedded bool) Panel {
	return Panel{Open: open || embedded, Embedded: embedded}
}

// Toggle opens a closed panel and closes an open one. Embedded panels stay open.
func (p Panel) Toggle() Panel {
	if p.Embedded {
		return p
	}
	return Panel{Open: !p.Open}
}

// IsOpen reports whether the body is visible.
func (p Panel) IsOpen() bool {
	return p.Embedded || p.Open
}

// ShowHeading reports whether the heading and toggle control are drawn.
func (p Panel) ShowHeading() bool {
	return !p.Embedded
}
