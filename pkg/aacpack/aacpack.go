// Package aacpack builds the FLV/RTMP audio tag bodies a session needs:
// the AAC sequence header (AudioSpecificConfig) and the raw-frame body,
// stripping an ADTS header when the input carries one.
package aacpack

const (
	adtsHeaderLength = 7

	soundFormatAAC = 10
	aacProfileLC   = 2

	packetTypeSeqHeader = 0x00
	packetTypeRaw       = 0x01
)

// sampleRateTable mirrors the 13-entry table used by AAC ADTS/ASC framing
// (spec §4.3); sampleRateIndex maps an unrecognized rate to index 4
// (44.1kHz), per the original implementation's default branch.
var sampleRateTable = []int{96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050, 16000, 12000, 11025, 8000, 7350}

func sampleRateIndex(sampleRate int) uint8 {
	for i, rate := range sampleRateTable {
		if rate == sampleRate {
			return uint8(i)
		}
	}
	return 4
}

// audioHeader builds the shared FLV AUDIODATA header byte (spec §4.3).
// The SoundRate bits are wire-format noise for AAC (receivers derive the
// real rate from the ASC) but are computed anyway for wire compatibility,
// per spec §9. SoundType is 0 for mono, 1 otherwise, matching the
// original implementation's audio_header computation.
func audioHeader(sampleRate, channels int) byte {
	idx := sampleRateIndex(sampleRate)
	var soundRate byte
	if idx < 6 {
		soundRate = 3
	} else {
		soundRate = 2
	}
	var soundType byte
	if channels != 1 {
		soundType = 1
	}
	return soundFormatAAC<<4 | soundRate<<2 | 1<<1 | soundType
}

// BuildSeqHeader builds the 4-byte AAC sequence header body (spec §4.3):
// the shared audio header, the AAC sequence-header packet type, and the
// 2-byte AudioSpecificConfig.
func BuildSeqHeader(sampleRate, channels int) []byte {
	idx := sampleRateIndex(sampleRate)
	asc0 := byte(aacProfileLC<<3) | (idx&0x0e)>>1
	asc1 := (idx&0x01)<<7 | byte(channels)<<3

	return []byte{
		audioHeader(sampleRate, channels),
		packetTypeSeqHeader,
		asc0,
		asc1,
	}
}

// BuildRawFrame builds the AAC raw-frame body (spec §4.3). If data begins
// with an ADTS sync word (0xff, high nibble 0xf), the 7-byte ADTS header
// is stripped first.
func BuildRawFrame(data []byte, sampleRate, channels int) []byte {
	if hasADTSHeader(data) {
		data = data[adtsHeaderLength:]
	}

	body := make([]byte, 0, len(data)+2)
	body = append(body, audioHeader(sampleRate, channels), packetTypeRaw)
	return append(body, data...)
}

func hasADTSHeader(data []byte) bool {
	return len(data) > adtsHeaderLength && data[0] == 0xff && data[1]&0xf0 == 0xf0
}
