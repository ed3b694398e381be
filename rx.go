//go:build tinygo || baremetal

package irnec

import (
	. "machine"
)

// RxDevice binds a Ticker (typically a *nec.Decoder) to the edge interrupt
// of the pin a demodulating IR receiver is connected to.
type RxDevice struct {
	pin    Pin
	ticker Ticker
}

// NewRxDevice configures pin as an input and returns a device ready to
// Start. It is the caller's responsibility to pick an interrupt-capable
// pin; no validation is performed.
func NewRxDevice(pin Pin, ticker Ticker) *RxDevice {
	// the most common receivers have a pull up pin builtin
	// but in the future, may want to add the option to use PinPullupInput
	pin.Configure(PinConfig{Mode: PinInput})
	return &RxDevice{
		pin:    pin,
		ticker: ticker,
	}
}

func (rx *RxDevice) handleEdge(Pin) {
	rx.ticker.Tick()
}

// Start sets the interrupt handler and thus starts processing signals.
// Use Start if the demodulator output is active-high: a burst ends on the
// falling edge, and the decoder's windows classify the intervals between
// successive end-of-burst edges.
func (rx *RxDevice) Start() {
	rx.pin.SetInterrupt(PinFalling, rx.handleEdge)
}

// StartInverted sets the interrupt handler for an inverting demodulator
// (the usual case: TSOP-style receivers idle high and pull low during a
// burst), where a burst ends on the rising edge.
func (rx *RxDevice) StartInverted() {
	rx.pin.SetInterrupt(PinRising, rx.handleEdge)
}

// Stop disables the interrupt handler.
func (rx *RxDevice) Stop() {
	rx.pin.SetInterrupt(PinFalling|PinRising, nil)
}
