package transport

import (
	"encoding/binary"

	"github.com/q191201771/naza/pkg/bele"

	"github.com/bobotouo/bb-rtmp/pkg/base"
)

// localChunkSize is the outgoing chunk size this adapter announces and
// divides every message into. Picked to match the teacher's own default
// (confirmed against pkg/rtmp's chunk-divider golden test, which splits
// at the same 4096-byte boundary).
const localChunkSize = 4096

const (
	fmt0 = 0
	fmt1 = 1
	fmt3 = 3
)

// messageHeader is the one-shot envelope a Packet carries; messageToChunks
// turns it into the wire bytes PushSession's low-level Write expects
// (spec §4.7's "chunk-stream framing ... consumed from an existing
// library" — here reduced to this one small plumbing function because
// this repo's real dependency pushes pre-chunked bytes; see DESIGN.md).
type messageHeader struct {
	csid        int
	timestampMs uint32
	typeID      uint8
	streamID    uint32
	headerClass base.HeaderClass
}

// messageToChunks splits body into RTMP chunks under h. The first chunk
// carries a type-0 (Large) 11-byte message header, including the stream
// ID, or a type-1 (Medium) 7-byte message header that omits the stream
// ID and relies on the receiver having already learned it for this
// chunk stream — h.headerClass picks between the two. Every continuation
// chunk uses format 3 (1-byte basic header only). Timestamps beyond the
// 3-byte field (~4.66 hours) are not extended-header-encoded — out of
// scope for a live publisher that reconnects well inside that window.
func messageToChunks(body []byte, h messageHeader) []byte {
	out := make([]byte, 0, len(body)+len(body)/localChunkSize*1+16)

	fmtBits := fmt0
	if h.headerClass == base.HeaderClassMedium {
		fmtBits = fmt1
	}
	out = append(out, byte(fmtBits<<6|h.csid))

	var ts3, len3 [3]byte
	bele.BePutUint24(ts3[:], h.timestampMs)
	bele.BePutUint24(len3[:], uint32(len(body)))
	out = append(out, ts3[:]...)
	out = append(out, len3[:]...)
	out = append(out, h.typeID)
	if h.headerClass != base.HeaderClassMedium {
		var sid [4]byte
		binary.LittleEndian.PutUint32(sid[:], h.streamID)
		out = append(out, sid[:]...)
	}

	for len(body) > 0 {
		n := localChunkSize
		if n > len(body) {
			n = len(body)
		}
		out = append(out, body[:n]...)
		body = body[n:]
		if len(body) > 0 {
			out = append(out, byte(fmt3<<6|h.csid))
		}
	}
	return out
}

func headerFor(pkt base.Packet) messageHeader {
	return messageHeader{
		csid:        pkt.Channel,
		timestampMs: pkt.TimestampMs,
		typeID:      typeIDFor(pkt.Type),
		streamID:    1,
		headerClass: pkt.HeaderClass,
	}
}

const (
	rtmpTypeIDAudio    = 8
	rtmpTypeIDVideo    = 9
	rtmpTypeIDDataAMF0 = 18
)

func typeIDFor(t base.PacketType) uint8 {
	switch t {
	case base.PacketTypeVideo:
		return rtmpTypeIDVideo
	case base.PacketTypeAudio:
		return rtmpTypeIDAudio
	default:
		return rtmpTypeIDDataAMF0
	}
}
