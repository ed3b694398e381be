package irnec

import "time"

const (
	// Freq38Khz is the carrier frequency used by NEC remotes and by the
	// demodulating receivers this package is written for.
	Freq38Khz = 38000
)

// TimePair encodes two durations used to encode an on-off or off-on amount of time.
type TimePair [2]time.Duration

// FrameMarshaller defines an interface for marshalling data to a slice of TimePairs.
type FrameMarshaller interface {
	MarshalFrame() []TimePair
}

// Ticker is the receive-side dispatch target. Tick is called once per
// qualifying pin edge, from the interrupt handler, so implementations must
// not block or allocate.
type Ticker interface {
	Tick()
}

// Micros returns the system clock as a wrapping 32-bit microsecond counter,
// the timestamp source expected by fsm.Machine. The wrap is harmless; elapsed
// times are computed with unsigned subtraction.
func Micros() uint32 {
	return uint32(time.Now().UnixNano() / 1e3)
}
