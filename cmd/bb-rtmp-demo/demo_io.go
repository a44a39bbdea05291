package main

import (
	"os"

	log "github.com/q191201771/naza/pkg/nazalog"

	"github.com/bobotouo/bb-rtmp/pkg/annexb"
)

const (
	naluTypeSliceNonIDR = 1
	naluTypeSliceIDR    = 5
)

// readAnnexbFrames groups a raw Annex-B elementary stream into per-access-
// unit buffers: every non-slice NAL (SPS, PPS, AUD, SEI, ...) is carried
// along with the slice NAL that follows it, matching the shape
// pkg/session.SendVideo expects (a buffer that may contain SPS+PPS+slice
// together, as a real encoder's keyframe output does).
func readAnnexbFrames(path string) [][]byte {
	buf, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("read video file failed. file=%s err=%v", path, err)
		return nil
	}

	var frames [][]byte
	var cur []byte
	for _, n := range annexb.Scan(buf) {
		start := n.Start - startCodeLen(buf, n.Start)
		cur = append(cur, buf[start:n.End]...)
		if n.Type == naluTypeSliceNonIDR || n.Type == naluTypeSliceIDR {
			frames = append(frames, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		frames = append(frames, cur)
	}
	return frames
}

// isKeyframe reports whether frame (a start-code-delimited access unit as
// produced by readAnnexbFrames) carries an IDR slice.
func isKeyframe(frame []byte) bool {
	for _, n := range annexb.Scan(frame) {
		if n.Type == naluTypeSliceIDR {
			return true
		}
	}
	return false
}

func startCodeLen(buf []byte, naluStart int) int {
	if naluStart >= 4 && buf[naluStart-4] == 0 && buf[naluStart-3] == 0 && buf[naluStart-2] == 0 && buf[naluStart-1] == 1 {
		return 4
	}
	return 3
}

// readAdtsFrames splits a concatenated stream of ADTS-framed AAC frames
// into individual frames, using the 13-bit aac_frame_length field in the
// ADTS header (bits 30..42 of the 7-byte header).
func readAdtsFrames(path string) [][]byte {
	buf, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("read audio file failed. file=%s err=%v", path, err)
		return nil
	}

	var frames [][]byte
	for i := 0; i+7 <= len(buf); {
		if buf[i] != 0xff || buf[i+1]&0xf0 != 0xf0 {
			i++
			continue
		}
		frameLen := int(buf[i+3]&0x03)<<11 | int(buf[i+4])<<3 | int(buf[i+5])>>5
		if frameLen < 7 || i+frameLen > len(buf) {
			break
		}
		frames = append(frames, buf[i:i+frameLen])
		i += frameLen
	}
	return frames
}
