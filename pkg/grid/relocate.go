package grid

// Relocation is the outcome of a successful [Grid.RelocateDetailed] call.
type Relocation struct {
	// Layout is the new layout with the active widget at its target.
	Layout Layout
	// Displaced lists the IDs of widgets that were moved out of the way,
	// in the order they were placed.
	Displaced []string
}

// Relocate moves the widget activeID to target, displacing any widgets it
// would overlap. See [Grid.RelocateDetailed] for the cascade rules.
// ok is false when the move cannot be resolved; the input layout is never
// modified either way.
func (g Grid) Relocate(layout Layout, activeID string, target Position) (Layout, bool) {
	r, ok := g.RelocateDetailed(layout, activeID, target)
	if !ok {
		return nil, false
	}
	return r.Layout, true
}

// RelocateDetailed moves the widget activeID to target and reports which
// widgets were displaced.
//
// Widgets overlapped by the target rectangle are handled one at a time in
// layout order. Each gets the first free position for its size, searched
// against the layout built so far with its own ID excluded and the target
// rectangle reserved. Widgets still waiting to be displaced keep blocking
// their current cells, and so does the active widget's current footprint:
// a displaced widget never takes over the cells being vacated by the move.
// Every displaced widget is placed exactly once.
//
// The call fails when activeID is unknown, when the target rectangle leaves
// the grid, or when any displaced widget finds no room. Partial cascades are
// never returned.
func (g Grid) RelocateDetailed(layout Layout, activeID string, target Position) (Relocation, bool) {
	idx := layout.Index(activeID)
	if idx < 0 {
		return Relocation{}, false
	}
	dest := RectAt(target, layout[idx].Size)
	if !g.InBounds(dest) {
		return Relocation{}, false
	}

	work := layout.Clone()
	overlapping := FindOverlapping(layout, dest, activeID)
	displaced := make([]string, 0, len(overlapping))
	reserved := []Rect{dest}

	for _, o := range overlapping {
		pos, ok := g.firstFit(work, o.Size, reserved, []string{o.ID})
		if !ok {
			return Relocation{}, false
		}
		work[work.Index(o.ID)].Position = pos
		displaced = append(displaced, o.ID)
	}

	work[idx].Position = target
	return Relocation{Layout: work, Displaced: displaced}, true
}
