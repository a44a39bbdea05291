package transport

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"

	"github.com/bobotouo/bb-rtmp/pkg/base"
)

// Golden bytes below are cross-checked against the teacher's own chunk
// divider test (pkg/rtmp/chunk_divider_test.go): channel 7 (video),
// stream id 1, a single-chunk case at timestamp 123 and a multi-chunk
// case at timestamp 0.
func TestMessageToChunks_SingleChunk(t *testing.T) {
	body := make([]byte, 10)
	for i := range body {
		body[i] = byte(i)
	}
	h := messageHeader{csid: 7, timestampMs: 123, typeID: rtmpTypeIDVideo, streamID: 1}

	got := messageToChunks(body, h)
	want := []byte{7, 0, 0, 0x7b, 0, 0, 10, 9, 1, 0, 0, 0}
	want = append(want, body...)
	assert.Equal(t, want, got)
}

func TestMessageToChunks_SplitsAtChunkSize(t *testing.T) {
	body := make([]byte, localChunkSize+10)
	h := messageHeader{csid: 7, timestampMs: 0, typeID: rtmpTypeIDVideo, streamID: 1}

	got := messageToChunks(body, h)
	// 12-byte fmt0 header + first chunk + 1-byte fmt3 header + remainder.
	assert.Equal(t, 12+localChunkSize+1+10, len(got))
	assert.Equal(t, byte(0xc7), got[12+localChunkSize])
}

// A Medium header class omits the 4-byte stream ID and flips the basic
// header's format bits from 0 to 1.
func TestMessageToChunks_MediumOmitsStreamID(t *testing.T) {
	body := []byte{0xaf, 0x00, 0x12, 0x08}
	h := messageHeader{csid: 4, timestampMs: 0, typeID: rtmpTypeIDAudio, streamID: 1, headerClass: base.HeaderClassMedium}

	got := messageToChunks(body, h)
	want := []byte{byte(1<<6 | 4), 0, 0, 0, 0, 0, 4, rtmpTypeIDAudio}
	want = append(want, body...)
	assert.Equal(t, want, got)
}

func TestHeaderFor(t *testing.T) {
	h := headerFor(base.Packet{Type: base.PacketTypeAudio, Channel: base.ChannelAV, TimestampMs: 42, HeaderClass: base.HeaderClassMedium})
	assert.Equal(t, uint8(rtmpTypeIDAudio), h.typeID)
	assert.Equal(t, base.ChannelAV, h.csid)
	assert.Equal(t, uint32(42), h.timestampMs)
	assert.Equal(t, base.HeaderClassMedium, h.headerClass)
}
