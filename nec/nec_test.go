package nec

import (
	"testing"
	"time"

	"github.com/crowsley/irnec"
)

func TestCodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		address uint16
		command byte
	}{
		{"8-bit address", 0x04, 0x08},
		{"zero address", 0x00, 0x45},
		{"extended address", 0x6B86, 0x13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := MakeCode(tt.address, tt.command)
			valid, address, command := SplitCode(code)
			if !valid {
				t.Fatalf("SplitCode(%#08x) reported invalid", code)
			}
			if address != tt.address {
				t.Errorf("address = %#04x, want %#04x", address, tt.address)
			}
			if command != tt.command {
				t.Errorf("command = %#02x, want %#02x", command, tt.command)
			}
		})
	}
}

func TestSplitCodeDetectsCorruption(t *testing.T) {
	// 0x20DF10EF is a real LG power code as this decoder accumulates it;
	// flip a bit in the inverse byte and validation must fail.
	if valid, _, _ := SplitCode(0x20DF10EF); !valid {
		t.Error("intact code reported invalid")
	}
	if valid, _, _ := SplitCode(0x20DF10EE); valid {
		t.Error("corrupted inverse byte reported valid")
	}
	if valid, _, _ := SplitCode(0xFFA857); !valid {
		t.Error("intact volume-up code reported invalid")
	}
}

func TestMarshalFrame(t *testing.T) {
	p := Packet{Code: 0x80000001}
	pairs := p.MarshalFrame()

	if len(pairs) != BitsPerCode+2 {
		t.Fatalf("len(pairs) = %d, want %d", len(pairs), BitsPerCode+2)
	}
	if pairs[0] != (irnec.TimePair{leadMark, leadSpace}) {
		t.Errorf("lead pair = %v", pairs[0])
	}
	// MSB first: the first bit pair carries a one, the second a zero.
	if pairs[1][1] != oneSpace {
		t.Errorf("first bit space = %v, want %v", pairs[1][1], oneSpace)
	}
	if pairs[2][1] != zeroSpace {
		t.Errorf("second bit space = %v, want %v", pairs[2][1], zeroSpace)
	}
	if pairs[len(pairs)-2][1] != oneSpace {
		t.Errorf("last bit space = %v, want %v", pairs[len(pairs)-2][1], oneSpace)
	}
	if pairs[len(pairs)-1][0] != trailMark {
		t.Errorf("trail mark = %v, want %v", pairs[len(pairs)-1][0], trailMark)
	}
}

func TestMarshalRepeat(t *testing.T) {
	p := Packet{IsRepeat: true}
	pairs := p.MarshalFrame()

	if len(pairs) != 2 {
		t.Fatalf("len(pairs) = %d, want 2", len(pairs))
	}
	if pairs[0][0] != leadMark || pairs[0][1] != repeatSpace {
		t.Errorf("repeat lead pair = %v", pairs[0])
	}
}

// TestMarshalDecodeRoundTrip feeds a marshalled waveform back through the
// decoder. The decoder sees end-of-burst edges, so the interval between
// edge i and i+1 is pair i's space plus pair i+1's mark.
func TestMarshalDecodeRoundTrip(t *testing.T) {
	const code = 0x20DF10EF
	pairs := Packet{Code: code}.MarshalFrame()
	d, c := newTestDecoder()

	c.edge(d, 100_000) // end of the lead mark, after quiet
	for i := 0; i+1 < len(pairs); i++ {
		gap := uint32((pairs[i][1] + pairs[i+1][0]) / time.Microsecond)
		c.edge(d, gap)
	}

	p, ok := d.TryGetPacket()
	if !ok {
		t.Fatal("marshalled frame did not decode")
	}
	if p.Code != code {
		t.Errorf("Code = %#08x, want %#08x", p.Code, code)
	}
	if p.IsRepeat {
		t.Error("full frame decoded as repeat")
	}
}
