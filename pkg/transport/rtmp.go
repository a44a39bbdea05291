package transport

import (
	"context"
	"fmt"

	lalrtmp "github.com/q191201771/lal/pkg/rtmp"

	"github.com/bobotouo/bb-rtmp/pkg/base"
)

// connectTimeoutMs/pushTimeoutMs/writeAvTimeoutMs mirror the fixed 10s
// transport timeout spec §4.5/§5 mandates.
const (
	connectTimeoutMs  = 10000
	pushTimeoutMs     = 10000
	writeAvTimeoutMs  = 10000
)

// rtmpTransport wraps lal/pkg/rtmp.PushSession: the handshake, command
// exchange and raw chunk-stream byte sink spec §4.7 names as "provided by
// an external RTMP library". Chunk-stream framing itself is done by this
// package's own messageToChunks (see chunk.go and DESIGN.md) because
// PushSession's low-level write methods take pre-chunked bytes.
type rtmpTransport struct {
	session *lalrtmp.PushSession
}

var _ Transport = &rtmpTransport{}

// New returns a Transport that pushes over a real RTMP connection.
func New() Transport {
	return &rtmpTransport{}
}

func (t *rtmpTransport) Connect(_ context.Context, url string) error {
	t.session = lalrtmp.NewPushSession(func(option *lalrtmp.PushSessionOption) {
		option.PushTimeoutMs = pushTimeoutMs
		option.WriteAvTimeoutMs = writeAvTimeoutMs
	})

	if err := t.session.Push(url); err != nil {
		t.session.Dispose()
		t.session = nil
		return fmt.Errorf("%w: %s", base.ErrConnect, err)
	}
	return nil
}

func (t *rtmpTransport) SendPacket(pkt base.Packet) error {
	chunks := messageToChunks(pkt.Body, headerFor(pkt))
	if err := t.session.Write(chunks); err != nil {
		return fmt.Errorf("%w: %s", base.ErrTransport, err)
	}
	return nil
}

func (t *rtmpTransport) Close() error {
	if t.session == nil {
		return nil
	}
	err := t.session.Dispose()
	t.session = nil
	return err
}
