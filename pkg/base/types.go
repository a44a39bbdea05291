package base

// Stats is the snapshot returned by the service's GetStats call.
//
// DelayMs and LossPct are always 0: the underlying transport exposes
// neither, and this repo does not synthesize them.
type Stats struct {
	BytesSent uint64
	DelayMs   int64
	LossPct   float64
}

// PacketType identifies which RTMP message channel a Packet travels on.
type PacketType uint8

const (
	PacketTypeVideo PacketType = iota
	PacketTypeAudio
	PacketTypeInfo
)

// HeaderClass picks which RTMP chunk message-header size the transport
// writes for a packet's first chunk: Large is the full 11-byte header
// (including the 4-byte stream ID), Medium is the 7-byte header that
// omits the stream ID and relies on the receiver already knowing it for
// that chunk stream.
type HeaderClass uint8

const (
	HeaderClassLarge HeaderClass = iota
	HeaderClassMedium
)

// Channel IDs fixed by spec §4: AMF0 command/info messages ride on 0x03,
// audio and video both ride on 0x04 (they are never in flight on the same
// session at the same instant since everything is serialized by the one
// global mutex).
const (
	ChannelAMF0  = 0x03
	ChannelAV    = 0x04
)

// Packet is the transient value handed from a session to the transport.
// It is never retained past the SendPacket call that consumes it.
type Packet struct {
	Type               PacketType
	Channel            int
	TimestampMs        uint32
	Body               []byte
	AbsoluteTimestamp  bool
	HeaderClass        HeaderClass
}
