package amf0meta

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"
)

func TestBuild_Framing(t *testing.T) {
	body := Build(Params{Width: 1280, Height: 720, VideoBitrateBps: 2_000_000, FPS: 30, SampleRate: 44100, Channels: 2})

	pos := 0
	assert.Equal(t, byte(markerString), body[pos])
	pos++
	nameLen := int(body[pos])<<8 | int(body[pos+1])
	pos += 2
	assert.Equal(t, "@setDataFrame", string(body[pos:pos+nameLen]))
	pos += nameLen

	assert.Equal(t, byte(markerString), body[pos])
	pos++
	nameLen = int(body[pos])<<8 | int(body[pos+1])
	pos += 2
	assert.Equal(t, "onMetaData", string(body[pos:pos+nameLen]))
	pos += nameLen

	assert.Equal(t, byte(markerEcma), body[pos])
	pos++
	count := uint32(body[pos])<<24 | uint32(body[pos+1])<<16 | uint32(body[pos+2])<<8 | uint32(body[pos+3])
	assert.Equal(t, uint32(numMetaEntries), count)

	assert.Equal(t, []byte{0x00, 0x00, 0x09}, body[len(body)-3:])
}

func TestBuild_Stereo(t *testing.T) {
	mono := Build(Params{Channels: 1})
	stereo := Build(Params{Channels: 2})
	assert.Equal(t, len(mono), len(stereo))
	assert.Equal(t, false, bytesContainBooleanTrue(mono))
	assert.Equal(t, true, bytesContainBooleanTrue(stereo))
}

// bytesContainBooleanTrue is a crude probe: the only boolean-typed entry
// in the payload is "stereo", so a 0x01 marker followed by a 0x01 value
// anywhere in the buffer identifies it.
func bytesContainBooleanTrue(body []byte) bool {
	for i := 0; i+1 < len(body); i++ {
		if body[i] == markerBoolean && body[i+1] == 1 {
			return true
		}
	}
	return false
}
