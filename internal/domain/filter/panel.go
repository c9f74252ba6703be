package filter

// Visibility of the filter panel.
type Visibility string

const (
	Collapsed Visibility = "collapsed"
	Expanded  Visibility = "expanded"
)

// Panel pairs the selection being edited (Pending) with the one driving requests (Applied).
// Transitions return a new Panel; the receiver is never modified.
type Panel struct {
	Visibility Visibility `json:"visibility"`
	Pending    State      `json:"pending"`
	Applied    State      `json:"applied"`
}

// NewPanel starts collapsed with both selections equal to seed.
func NewPanel(seed State) Panel {
	return Panel{
		Visibility: Collapsed,
		Pending:    seed.Clone(),
		Applied:    seed.Clone(),
	}
}

func (p Panel) Toggle() Panel {
	out := p.clone()
	if p.Visibility == Expanded {
		out.Visibility = Collapsed
	} else {
		out.Visibility = Expanded
	}
	return out
}

// Edit changes only the pending selection.
func (p Panel) Edit(fn func(State) State) Panel {
	out := p.clone()
	if fn != nil {
		out.Pending = fn(p.Pending.Clone())
	}
	return out
}

// Apply commits pending to applied and collapses. changed reports whether the applied
// selection is different from before, i.e. whether a new request is due.
func (p Panel) Apply() (next Panel, changed bool) {
	next = p.clone()
	next.Applied = p.Pending.Clone()
	next.Visibility = Collapsed
	return next, !p.Applied.Equal(next.Applied)
}

// Reset restores both selections to Default and collapses.
func (p Panel) Reset() (next Panel, changed bool) {
	next = Panel{
		Visibility: Collapsed,
		Pending:    Default(),
		Applied:    Default(),
	}
	return next, !p.Applied.Equal(next.Applied)
}

// Dirty reports whether there are pending edits that have not been applied.
func (p Panel) Dirty() bool {
	return !p.Pending.Equal(p.Applied)
}

func (p Panel) clone() Panel {
	return Panel{
		Visibility: p.Visibility,
		Pending:    p.Pending.Clone(),
		Applied:    p.Applied.Clone(),
	}
}
