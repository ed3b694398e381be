// Package nec decodes (and marshals) the NEC infrared remote-control
// protocol. See https://www.sbprojects.net/knowledge/ir/nec.php
//
// The decoder classifies the interval between successive end-of-burst
// edges, not burst widths. Each such interval is the space that encodes a
// symbol plus the fixed-width mark that follows it, so transmitters with
// out-of-spec burst widths still decode correctly and only one interrupt
// edge per symbol is needed.
package nec

import "time"

// Decode windows, microseconds between successive end-of-burst edges:
// the lead space (4.5ms) plus a bit mark, a bit space plus a bit mark,
// or the repeat space (2.25ms) plus the trail mark.
const (
	ZeroDuration   = 1125 // 562.5us space + 562.5us mark
	OneDuration    = 2250 // 1687.5us space + 562.5us mark
	RepeatDuration = 2810 // repeat space + trail mark
	LeadDuration   = 5060 // lead space + first bit mark
	HalfWindow     = 80
	BitsPerCode    = 32
)

// Transmit waveform, nominal datasheet durations.
const (
	unit        = 562500 * time.Nanosecond
	leadMark    = 16 * unit // 9ms
	leadSpace   = 8 * unit  // 4.5ms
	repeatSpace = 4 * unit  // 2.25ms
	bitMark     = unit
	zeroSpace   = unit
	oneSpace    = 3 * unit
	trailMark   = unit
	frameGap    = 40 * time.Millisecond
)

// Packet is one decoded NEC frame: either a full 32-bit code or a marker
// that the previous command is being repeated (button held down).
type Packet struct {
	IsRepeat bool
	Code     uint32
}

// Timing holds the four window centres, the shared tolerance and the frame
// bit length for one decoder instance. Values are fixed at construction.
type Timing struct {
	Zero      uint32
	One       uint32
	Repeat    uint32
	Lead      uint32
	HalfWidth uint32
	Bits      uint8
}

// DefaultTiming is the standard NEC profile.
var DefaultTiming = Timing{
	Zero:      ZeroDuration,
	One:       OneDuration,
	Repeat:    RepeatDuration,
	Lead:      LeadDuration,
	HalfWidth: HalfWindow,
	Bits:      BitsPerCode,
}

// SplitCode breaks a raw 32-bit code into address and command, checking the
// command against its inverse byte. The decoder accumulates bits in
// received order, so the address occupies the high bytes and each byte is
// bit-reversed relative to datasheet notation; that reversal commutes with
// the inverse check and with round-tripping through MakeCode, so it never
// matters for matching codes.
func SplitCode(code uint32) (valid bool, address uint16, command byte) {
	addrLow := byte(code >> 24)
	addrHigh := byte(code >> 16)
	command = byte(code >> 8)
	invCmd := byte(code)
	address = MakeAddress(addrLow, addrHigh)
	valid = command == ^invCmd
	return
}

// MakeCode assembles a raw 32-bit code from an address and command.
func MakeCode(address uint16, command byte) uint32 {
	addrLow, addrHigh := SplitAddress(address)
	return uint32(addrLow)<<24 | uint32(addrHigh)<<16 | uint32(command)<<8 | uint32(^command)
}

// SplitAddress splits an NEC address into low and high bytes. Addresses in
// the 8-bit range use the inverse of the low byte as the high byte.
func SplitAddress(address uint16) (addrLow, addrHigh byte) {
	addrLow = byte(address & 0xff)
	addrHigh = byte((address >> 8) & 0xff)
	if addrHigh == 0 {
		addrHigh = ^addrLow
	}
	return addrLow, addrHigh
}

// MakeAddress assembles an NEC address from low and high bytes. A high byte
// that is the inverse of the low byte denotes an 8-bit address.
func MakeAddress(addrLow, addrHigh byte) uint16 {
	if addrHigh == ^addrLow {
		return uint16(addrLow)
	}
	return uint16(addrHigh)<<8 | uint16(addrLow)
}
