// Package amf0meta builds the @setDataFrame/onMetaData AMF0 payload sent
// once a session knows enough about its media to describe it (spec
// §4.4). The three AMF0 primitives it needs (string, number, boolean) are
// implemented directly rather than imported — see SPEC_FULL.md §13.4.
package amf0meta

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	markerNumber  = 0x00
	markerBoolean = 0x01
	markerString  = 0x02
	markerEcma    = 0x08
)

// Params carries the media description that feeds onMetaData's fixed
// 12-entry key table (spec §4.4).
type Params struct {
	Width          int
	Height         int
	VideoBitrateBps int
	FPS            int
	SampleRate     int
	Channels       int
}

const numMetaEntries = 12

// Build encodes @setDataFrame/onMetaData with the 12 fixed keys, in the
// order spec §4.4 requires.
func Build(p Params) []byte {
	buf := &bytes.Buffer{}
	writeString(buf, "@setDataFrame")
	writeString(buf, "onMetaData")

	buf.WriteByte(markerEcma)
	writeUint32(buf, numMetaEntries)

	writeEntryNumber(buf, "width", float64(p.Width))
	writeEntryNumber(buf, "height", float64(p.Height))
	writeEntryNumber(buf, "videocodecid", 7)
	writeEntryNumber(buf, "videodatarate", float64(p.VideoBitrateBps)/1000)
	writeEntryNumber(buf, "framerate", float64(p.FPS))
	writeEntryNumber(buf, "audiocodecid", 10)
	writeEntryNumber(buf, "audiodatarate", 64)
	writeEntryNumber(buf, "audiosamplerate", float64(p.SampleRate))
	writeEntryNumber(buf, "audiosamplesize", 16)
	writeEntryBoolean(buf, "stereo", p.Channels > 1)
	writeEntryNumber(buf, "duration", 0)
	writeEntryNumber(buf, "filesize", 0)

	buf.Write([]byte{0x00, 0x00, 0x09}) // object end
	return buf.Bytes()
}

func writeEntryNumber(buf *bytes.Buffer, key string, v float64) {
	writeKey(buf, key)
	writeNumber(buf, v)
}

func writeEntryBoolean(buf *bytes.Buffer, key string, v bool) {
	writeKey(buf, key)
	writeBoolean(buf, v)
}

func writeKey(buf *bytes.Buffer, key string) {
	writeUint16(buf, uint16(len(key)))
	buf.WriteString(key)
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte(markerString)
	writeUint16(buf, uint16(len(s)))
	buf.WriteString(s)
}

func writeNumber(buf *bytes.Buffer, v float64) {
	buf.WriteByte(markerNumber)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}

func writeBoolean(buf *bytes.Buffer, v bool) {
	buf.WriteByte(markerBoolean)
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
