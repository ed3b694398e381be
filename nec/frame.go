package nec

import "github.com/crowsley/irnec"

// MarshalFrame implements irnec.FrameMarshaller, producing the mark/space
// waveform for the packet. Bits go out most significant first, matching
// the decoder's shift-left accumulation. The trail mark matters on the
// receive side: it supplies the final end-of-burst edge that closes the
// last symbol's interval.
func (p Packet) MarshalFrame() []irnec.TimePair {
	if p.IsRepeat {
		return []irnec.TimePair{
			{leadMark, repeatSpace},
			{trailMark, frameGap},
		}
	}

	out := make([]irnec.TimePair, 0, BitsPerCode+2)
	out = append(out, irnec.TimePair{leadMark, leadSpace})
	for bit := BitsPerCode - 1; bit >= 0; bit-- {
		if p.Code>>uint(bit)&1 == 1 {
			out = append(out, irnec.TimePair{bitMark, oneSpace})
		} else {
			out = append(out, irnec.TimePair{bitMark, zeroSpace})
		}
	}
	return append(out, irnec.TimePair{trailMark, frameGap})
}
