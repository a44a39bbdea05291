// Package service is the public entry point (spec §6): open, set
// metadata, send video/audio, get stats, close. It owns the registry and
// the one process-wide mutex spec §5 requires — every operation holds it
// for its full duration, including the blocking transport write, which
// spec §5 calls out explicitly as "a deliberately simple design".
package service

import (
	"context"
	"sync"

	log "github.com/q191201771/naza/pkg/nazalog"

	"github.com/bobotouo/bb-rtmp/pkg/base"
	"github.com/bobotouo/bb-rtmp/pkg/registry"
	"github.com/bobotouo/bb-rtmp/pkg/session"
	"github.com/bobotouo/bb-rtmp/pkg/transport"
)

// TransportFactory builds a fresh Transport for each Open call. Production
// code leaves it at its default (transport.New); tests substitute one
// that returns a *transport.Recorder.
type TransportFactory func() transport.Transport

// Service is the registry + global-mutex singleton spec §9 prescribes.
// The zero value is not usable; construct with New.
type Service struct {
	mu  sync.Mutex
	reg *registry.Registry

	newTransport TransportFactory
}

// ModServiceOption configures a Service at construction, mirroring the
// teacher's options-pattern constructors (e.g. rtmp.NewPushSession).
type ModServiceOption func(*Service)

// New returns a ready-to-use Service. By default every Open call gets a
// real RTMP transport; WithTransportFactory overrides that for tests.
func New(modOptions ...ModServiceOption) *Service {
	s := &Service{
		reg:          registry.New(),
		newTransport: transport.New,
	}
	for _, mod := range modOptions {
		mod(s)
	}
	return s
}

// WithTransportFactory overrides how each session's transport is built.
func WithTransportFactory(f TransportFactory) ModServiceOption {
	return func(s *Service) { s.newTransport = f }
}

// Open allocates a transport, connects it, and registers the resulting
// session. Returns handle 0 and base.ErrConnect on failure — nothing is
// registered in that case (spec §4.5).
func (s *Service) Open(ctx context.Context, url string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := session.Open(ctx, s.newTransport(), url)
	if err != nil {
		log.Errorf("open failed. url=%s err=%v", url, err)
		return 0, err
	}

	h := s.reg.Insert(sess)
	log.Infof("open succ. handle=%d url=%s", h, url)
	return h, nil
}

// SetMetadata updates handle's media parameters.
func (s *Service) SetMetadata(handle uint64, width, height, videoBitrateBps, fps, sampleRate, channels int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.reg.Lookup(handle)
	if err != nil {
		return err
	}
	sess.SetMetadata(width, height, videoBitrateBps, fps, sampleRate, channels)
	return nil
}

// SendVideo runs the video packaging/preamble pipeline for handle and
// submits the result to the transport.
func (s *Service) SendVideo(handle uint64, data []byte, timestampMs int64, isKey bool) error {
	if len(data) == 0 {
		return base.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.reg.Lookup(handle)
	if err != nil {
		return err
	}
	return sess.SendVideo(data, uint32(timestampMs), isKey)
}

// SendAudio runs the audio packaging/preamble pipeline for handle and
// submits the result to the transport.
func (s *Service) SendAudio(handle uint64, data []byte, timestampMs int64) error {
	if len(data) == 0 {
		return base.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.reg.Lookup(handle)
	if err != nil {
		return err
	}
	return sess.SendAudio(data, uint32(timestampMs))
}

// GetStats reports handle's byte counter (delay/loss are always 0).
func (s *Service) GetStats(handle uint64) (base.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.reg.Lookup(handle)
	if err != nil {
		return base.Stats{}, err
	}
	return sess.Stats(), nil
}

// Close tears handle's session down and removes it from the registry.
// Idempotent on an unknown or already-closed handle (spec §4.5/S6).
func (s *Service) Close(handle uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.reg.Lookup(handle)
	if err != nil {
		return
	}
	sess.Close()
	s.reg.Remove(handle)
}

// Shutdown closes every live session. Meant for tests that need a clean
// slate between cases (spec §9's "explicit shutdown() for tests").
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.reg.Drain() {
		sess.Close()
	}
}
