package service

import (
	"context"
	"testing"

	"github.com/q191201771/naza/pkg/assert"

	"github.com/bobotouo/bb-rtmp/pkg/base"
	"github.com/bobotouo/bb-rtmp/pkg/transport"
)

func newTestService() (*Service, *transport.Recorder) {
	rec := transport.NewRecorder()
	s := New(WithTransportFactory(func() transport.Transport { return rec }))
	return s, rec
}

func TestOpen_ReturnsNonZeroHandle(t *testing.T) {
	s, _ := newTestService()
	h, err := s.Open(context.Background(), "rtmp://h/app/k")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, h == 0)
}

func TestOpen_ConnectFailureReturnsZeroHandle(t *testing.T) {
	rec := transport.NewRecorder()
	rec.FailConnect(base.ErrConnect)
	s := New(WithTransportFactory(func() transport.Transport { return rec }))

	h, err := s.Open(context.Background(), "rtmp://h/app/k")
	assert.Equal(t, base.ErrConnect, err)
	assert.Equal(t, uint64(0), h)
}

// S5: bad handle returns an error and performs no I/O.
func TestS5_BadHandle(t *testing.T) {
	s, rec := newTestService()
	err := s.SendVideo(42, []byte{0x00, 0x00, 0x00, 0x01, 0x65, 0x01}, 0, true)
	assert.Equal(t, base.ErrInvalidHandle, err)
	assert.Equal(t, 0, len(rec.Packets))
}

func TestGetStats_UnknownHandle(t *testing.T) {
	s, _ := newTestService()
	_, err := s.GetStats(1)
	assert.Equal(t, base.ErrInvalidHandle, err)
}

// S6 at the service level: close is idempotent and frees the handle.
func TestClose_Idempotent(t *testing.T) {
	s, _ := newTestService()
	h, err := s.Open(context.Background(), "rtmp://h/app/k")
	assert.Equal(t, nil, err)

	s.Close(h)
	s.Close(h)

	_, err = s.GetStats(h)
	assert.Equal(t, base.ErrInvalidHandle, err)
}

func TestFullFlow_VideoAndAudio(t *testing.T) {
	s, rec := newTestService()
	h, err := s.Open(context.Background(), "rtmp://h/app/k")
	assert.Equal(t, nil, err)

	assert.Equal(t, nil, s.SetMetadata(h, 1280, 720, 2_000_000, 30, 44100, 2))

	kf := []byte{}
	kf = append(kf, 0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x1f, 0xaa)
	kf = append(kf, 0x00, 0x00, 0x00, 0x01, 0x68, 0xce, 0x3c, 0x80)
	kf = append(kf, 0x00, 0x00, 0x00, 0x01, 0x65, 0x01, 0x02, 0x03)

	assert.Equal(t, nil, s.SendVideo(h, kf, 0, true))
	assert.Equal(t, nil, s.SendAudio(h, []byte{0xff, 0xf1, 0x4c, 0x80, 0x01, 0x7f, 0xfc, 0x21, 0x22}, 33))

	stats, err := s.GetStats(h)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, stats.BytesSent > 0)
	assert.Equal(t, 5, len(rec.Packets)) // avc seq hdr, metadata, video frame, aac seq hdr, audio frame
}
