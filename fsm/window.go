package fsm

// Window is a timing tolerance band: it accepts any sample within
// HalfWidth microseconds of Center. Bounds are saturating, so a window
// near zero does not wrap into a huge lower bound and a window near the
// top of the counter range does not wrap its upper bound past zero.
type Window struct {
	Center    uint32
	HalfWidth uint32
}

// Contains reports whether sample falls inside the window.
func (w Window) Contains(sample uint32) bool {
	lo := uint32(0)
	if w.Center > w.HalfWidth {
		lo = w.Center - w.HalfWidth
	}
	hi := w.Center + w.HalfWidth
	if hi < w.Center {
		hi = ^uint32(0)
	}
	return sample >= lo && sample <= hi
}
