package transport

import (
	"context"
	"sync"

	"github.com/bobotouo/bb-rtmp/pkg/base"
)

// Recorder is an in-memory Transport for tests: it never touches the
// network, just captures every packet it's asked to send so a property
// test can inspect the exact wire order (spec §9 / §8 scenarios).
type Recorder struct {
	mu       sync.Mutex
	URL      string
	Packets  []base.Packet
	closed   bool
	connectErr error
	sendErr    error
}

var _ Transport = &Recorder{}

// NewRecorder returns a Recorder ready for use.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailConnect makes every later Connect call return err instead of
// succeeding, for exercising spec §7's ConnectError path.
func (r *Recorder) FailConnect(err error) {
	r.connectErr = err
}

// FailNextSend makes the next SendPacket call return err, for exercising
// spec §7's TransportError path.
func (r *Recorder) FailNextSend(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendErr = err
}

func (r *Recorder) Connect(_ context.Context, url string) error {
	if r.connectErr != nil {
		return r.connectErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.URL = url
	return nil
}

func (r *Recorder) SendPacket(pkt base.Packet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sendErr != nil {
		err := r.sendErr
		r.sendErr = nil
		return err
	}
	// Packet.Body is scratch memory per spec §4.7; copy it so later
	// mutation by the caller can't corrupt what the test observes.
	body := append([]byte{}, pkt.Body...)
	pkt.Body = body
	r.Packets = append(r.Packets, pkt)
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
