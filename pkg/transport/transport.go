// Package transport is the C7 adapter: a thin contract over the RTMP
// library that does the actual handshake and byte-pushing, plus two
// implementations — a real one wrapping lal/pkg/rtmp.PushSession, and an
// in-memory recorder for tests (spec §9's prescribed split).
package transport

import (
	"context"

	"github.com/bobotouo/bb-rtmp/pkg/base"
)

// Transport is the contract a Session needs from whatever pushes bytes
// onto the wire: connect, submit one packet, and close. Nothing else in
// this module knows it's talking to RTMP rather than, say, a test double.
type Transport interface {
	// Connect performs URL parse, dial, handshake, connect, and
	// createStream/publish. It must return base.ErrConnect (wrapped) on
	// any failure, having released every partial allocation first.
	Connect(ctx context.Context, url string) error

	// SendPacket submits one packet's body on the given channel/type. It
	// must return base.ErrTransport (wrapped) if the underlying library
	// rejects the write; the session does not treat that as fatal.
	SendPacket(pkt base.Packet) error

	// Close tears the link down. Idempotent.
	Close() error
}
