// Package avcpack builds the two FLV/RTMP video tag bodies a session
// needs: the AVC sequence header (an AVCDecoderConfigurationRecord wrapped
// for the wire) and the AVCC frame body for a video buffer's NAL units.
package avcpack

import (
	"github.com/q191201771/naza/pkg/bele"

	"github.com/bobotouo/bb-rtmp/pkg/annexb"
	"github.com/bobotouo/bb-rtmp/pkg/base"
)

const (
	naluTypeSPS = 7
	naluTypePPS = 8
)

// CaptureSpsPps scans buf and returns the last SPS/PPS NAL bodies found in
// it, if any. A nil return for either means that type wasn't present in
// buf — callers are expected to keep the previously captured value in
// that case.
func CaptureSpsPps(buf []byte) (sps, pps []byte) {
	for _, n := range annexb.Scan(buf) {
		switch n.Type {
		case naluTypeSPS:
			sps = append([]byte{}, n.Bytes(buf)...)
		case naluTypePPS:
			pps = append([]byte{}, n.Bytes(buf)...)
		}
	}
	return
}

// BuildSeqHeader builds the AVC sequence header body (spec §4.2) from a
// captured SPS/PPS pair. Returns base.ErrUnsupportedFormat if sps is too
// short to carry a profile/level (spec §9 open question) rather than
// indexing out of range.
func BuildSeqHeader(sps, pps []byte) ([]byte, error) {
	if len(sps) < 4 {
		return nil, base.ErrUnsupportedFormat
	}

	body := make([]byte, 0, 16+len(sps)+len(pps))
	body = append(body,
		0x17,             // frame type 1 (key) | codec id 7 (AVC)
		0x00,             // AVC packet type: sequence header
		0x00, 0x00, 0x00, // composition time = 0
		0x01,    // configurationVersion
		sps[1],  // AVCProfileIndication
		sps[2],  // profile_compatibility
		sps[3],  // AVCLevelIndication
		0xff,    // reserved(6)=1 | lengthSizeMinusOne(2)=3
		0xe1,    // reserved(3)=0b111 | numOfSps(5)=1
	)
	body = appendU16Prefixed(body, sps)
	body = append(body, 0x01) // numOfPps = 1
	body = appendU16Prefixed(body, pps)
	return body, nil
}

// BuildFrameBody builds the AVCC video frame body (spec §4.2) from the raw
// Annex-B buffer, rewriting every non-SPS/PPS NAL into 4-byte length-
// prefixed form. If the buffer contains only SPS/PPS (body length <= 5,
// i.e. only the 5-byte prefix with no NAL appended), the caller is meant
// to treat that as a no-op frame rather than an error (spec §4.2/§9).
func BuildFrameBody(buf []byte, isKey bool) []byte {
	body := make([]byte, 0, len(buf)+16)
	if isKey {
		body = append(body, 0x17)
	} else {
		body = append(body, 0x27)
	}
	body = append(body,
		0x01,             // AVC packet type: NALU
		0x00, 0x00, 0x00, // composition time offset = 0
	)

	for _, n := range annexb.Scan(buf) {
		if n.Type == naluTypeSPS || n.Type == naluTypePPS {
			continue
		}
		nal := n.Bytes(buf)
		lenBuf := make([]byte, 4)
		bele.BePutUint32(lenBuf, uint32(len(nal)))
		body = append(body, lenBuf...)
		body = append(body, nal...)
	}
	return body
}

func appendU16Prefixed(dst, b []byte) []byte {
	lenBuf := make([]byte, 2)
	bele.BePutUint16(lenBuf, uint16(len(b)))
	dst = append(dst, lenBuf...)
	return append(dst, b...)
}
