// Package annexb scans an H.264 Annex-B byte stream (NAL units separated
// by 00 00 01 / 00 00 00 01 start codes) and yields the individual NAL
// units in order.
package annexb

// Nalu is one NAL unit found inside a buffer: Type is the 5-bit
// nal_unit_type (buf[Start] & 0x1f), Start/End delimit the NAL body
// (start code excluded) within the buffer that was scanned.
type Nalu struct {
	Type  uint8
	Start int
	End   int
}

// Bytes slices the NAL body for n out of buf. buf must be the same slice
// passed to Scan.
func (n Nalu) Bytes(buf []byte) []byte {
	return buf[n.Start:n.End]
}

// Scan locates every start code in buf and returns the NAL units between
// them, in order. A 4-byte start code takes precedence over a 3-byte one
// beginning at the same offset. Trailing bytes after the last start code
// with no further start code are returned as the final NAL. A zero-length
// NAL (two start codes back to back) is skipped. A buffer with no start
// code at all yields no NAL units — this is not an error.
func Scan(buf []byte) []Nalu {
	var nalus []Nalu

	starts := startCodes(buf)
	if len(starts) == 0 {
		return nil
	}

	for i, sc := range starts {
		bodyStart := sc.offset + sc.length
		var bodyEnd int
		if i+1 < len(starts) {
			bodyEnd = starts[i+1].offset
		} else {
			bodyEnd = len(buf)
		}
		if bodyEnd <= bodyStart {
			continue
		}
		nalus = append(nalus, Nalu{
			Type:  buf[bodyStart] & 0x1f,
			Start: bodyStart,
			End:   bodyEnd,
		})
	}
	return nalus
}

type startCode struct {
	offset int
	length int // 3 or 4
}

// startCodes finds every 00 00 01 / 00 00 00 01 occurrence in buf, longest
// match first at a given offset, without emitting overlapping matches.
func startCodes(buf []byte) []startCode {
	var out []startCode
	i := 0
	for i+2 < len(buf) {
		if buf[i] != 0x00 || buf[i+1] != 0x00 {
			i++
			continue
		}
		if buf[i+2] == 0x01 {
			out = append(out, startCode{offset: i, length: 3})
			i += 3
			continue
		}
		if i+3 < len(buf) && buf[i+2] == 0x00 && buf[i+3] == 0x01 {
			out = append(out, startCode{offset: i, length: 4})
			i += 4
			continue
		}
		i++
	}
	return out
}
