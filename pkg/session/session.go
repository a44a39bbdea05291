// Package session is the C5 state machine: one Session owns one RTMP
// link, enforces preamble ordering (AVC sequence header, AAC sequence
// header, onMetaData), counts bytes, and talks to the transport. Every
// method assumes the caller already holds whatever exclusivity it needs
// (pkg/service's single process-wide mutex, per spec §5) — Session itself
// does no locking.
package session

import (
	"context"

	log "github.com/q191201771/naza/pkg/nazalog"

	"github.com/bobotouo/bb-rtmp/pkg/aacpack"
	"github.com/bobotouo/bb-rtmp/pkg/amf0meta"
	"github.com/bobotouo/bb-rtmp/pkg/avcpack"
	"github.com/bobotouo/bb-rtmp/pkg/base"
	"github.com/bobotouo/bb-rtmp/pkg/transport"
)

// defaultSampleRate/defaultChannels/defaultFPS seed a session before its
// first set_metadata call, matching the original implementation's
// Connection defaults (see SPEC_FULL.md §12) so a stream that only ever
// calls send_audio still lands on a sane ADTS-less sample-rate-index
// rather than the zero-value branch by accident.
const (
	defaultSampleRate = 44100
	defaultChannels   = 1
	defaultFPS        = 30
)

// Session is the central entity of spec §3. Exported so pkg/registry can
// hold it directly; callers reach it only through pkg/service.
type Session struct {
	transport transport.Transport
	connected bool

	sps, pps []byte

	sentVideoConfig bool
	sentAudioConfig bool
	sentMetadata    bool

	width          int
	height         int
	videoBitrateBps int
	fps            int
	sampleRate     int
	channels       int

	bytesSent uint64
}

// Open dials url over t and returns a ready-to-use Session, or an error
// wrapping base.ErrConnect. On failure no Session is returned and t is not
// closed here: releasing partial allocations is t.Connect's own job (see
// transport.Transport), which gives the original's
// full-teardown-on-connect-failure behavior (SPEC_FULL.md §12).
func Open(ctx context.Context, t transport.Transport, url string) (*Session, error) {
	if err := t.Connect(ctx, url); err != nil {
		return nil, err
	}
	return &Session{
		transport:  t,
		connected:  true,
		sampleRate: defaultSampleRate,
		channels:   defaultChannels,
		fps:        defaultFPS,
	}, nil
}

// SetMetadata updates the session's media parameters. A change in width
// or height from a previously non-zero value resets the video preamble
// state and clears sps/pps so the next keyframe relearns and re-announces
// them (spec §3 invariant 5).
func (s *Session) SetMetadata(width, height, videoBitrateBps, fps, sampleRate, channels int) {
	resChanged := (s.width != 0 && width != s.width) || (s.height != 0 && height != s.height)

	s.width = width
	s.height = height
	s.videoBitrateBps = videoBitrateBps
	s.fps = fps
	s.sampleRate = sampleRate
	s.channels = channels

	if resChanged {
		s.sentVideoConfig = false
		s.sentMetadata = false
		s.sps = nil
		s.pps = nil
		log.Infof("resolution changed, resetting video preamble. width=%d height=%d", width, height)
	}
}

// SendVideo scans buf for SPS/PPS, emits the AVC sequence header and/or
// onMetaData if this call is the one that completes them, then emits the
// frame body. A buffer containing only SPS/PPS produces no frame body and
// is not an error (spec §4.2/§9).
func (s *Session) SendVideo(data []byte, timestampMs uint32, isKey bool) error {
	if len(data) == 0 {
		return nil
	}

	if sps, pps := avcpack.CaptureSpsPps(data); sps != nil || pps != nil {
		if sps != nil {
			s.sps = sps
		}
		if pps != nil {
			s.pps = pps
		}
	}

	if !s.sentVideoConfig && len(s.sps) > 0 && len(s.pps) > 0 {
		header, err := avcpack.BuildSeqHeader(s.sps, s.pps)
		if err != nil {
			// SPS too short to carry profile/level: leave the preamble
			// unsent so a later, well-formed keyframe can still complete
			// it (spec §9 open question).
			log.Warnf("avc seq header build failed, leaving preamble unsent. err=%v", err)
		} else {
			if err := s.emit(base.PacketTypeVideo, base.ChannelAV, timestampMs, header, base.HeaderClassLarge); err != nil {
				return err
			}
			s.sentVideoConfig = true
		}
	}

	s.maybeSendMetadata(false)

	body := avcpack.BuildFrameBody(data, isKey)
	if len(body) <= 5 {
		return nil
	}
	return s.emit(base.PacketTypeVideo, base.ChannelAV, timestampMs, body, base.HeaderClassLarge)
}

// SendAudio emits the AAC sequence header if this is the first audio
// call, onMetaData if eligible, then the raw frame.
func (s *Session) SendAudio(data []byte, timestampMs uint32) error {
	if len(data) == 0 {
		return nil
	}

	if !s.sentAudioConfig {
		header := aacpack.BuildSeqHeader(s.sampleRate, s.channels)
		// Spec allows either header class for the AAC sequence header;
		// Medium exercises the compact (stream-ID-omitting) chunk header.
		if err := s.emit(base.PacketTypeAudio, base.ChannelAV, 0, header, base.HeaderClassMedium); err != nil {
			return err
		}
		s.sentAudioConfig = true
	}

	s.maybeSendMetadata(true)

	body := aacpack.BuildRawFrame(data, s.sampleRate, s.channels)
	return s.emit(base.PacketTypeAudio, base.ChannelAV, timestampMs, body, base.HeaderClassLarge)
}

// maybeSendMetadata emits onMetaData the first time it becomes eligible:
// once video config is sent and width/height are known, or — on an audio
// call (fromAudio) — once width, height and sample rate are all known
// (spec §4.5's META sub-state).
func (s *Session) maybeSendMetadata(fromAudio bool) {
	if s.sentMetadata {
		return
	}
	eligible := (s.sentVideoConfig && s.width > 0 && s.height > 0) ||
		(fromAudio && s.width > 0 && s.height > 0 && s.sampleRate > 0)
	if !eligible {
		return
	}

	body := amf0meta.Build(amf0meta.Params{
		Width:           s.width,
		Height:          s.height,
		VideoBitrateBps: s.videoBitrateBps,
		FPS:             s.fps,
		SampleRate:      s.sampleRate,
		Channels:        s.channels,
	})
	if err := s.emit(base.PacketTypeInfo, base.ChannelAMF0, 0, body, base.HeaderClassLarge); err != nil {
		log.Warnf("onMetaData send failed, will retry on next eligible call. err=%v", err)
		return
	}
	s.sentMetadata = true
}

func (s *Session) emit(t base.PacketType, channel int, timestampMs uint32, body []byte, headerClass base.HeaderClass) error {
	err := s.transport.SendPacket(base.Packet{
		Type:              t,
		Channel:           channel,
		TimestampMs:       timestampMs,
		Body:              body,
		AbsoluteTimestamp: true,
		HeaderClass:       headerClass,
	})
	if err != nil {
		return err
	}
	s.bytesSent += uint64(len(body))
	return nil
}

// Stats returns the current byte counter; delay/loss are always 0
// (spec §4.5/§9 — the transport exposes neither).
func (s *Session) Stats() base.Stats {
	return base.Stats{BytesSent: s.bytesSent}
}

// Close tears down the transport. Idempotent.
func (s *Session) Close() {
	if !s.connected {
		return
	}
	s.connected = false
	if err := s.transport.Close(); err != nil {
		log.Warnf("transport close error (ignored, close is best-effort). err=%v", err)
	}
}
