package avcpack

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"

	"github.com/bobotouo/bb-rtmp/pkg/base"
)

func TestCaptureSpsPps(t *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x1f, 0xaa,
		0x00, 0x00, 0x00, 0x01, 0x68, 0xce, 0x3c, 0x80,
		0x00, 0x00, 0x00, 0x01, 0x65, 0x01, 0x02,
	}
	sps, pps := CaptureSpsPps(buf)
	assert.Equal(t, []byte{0x67, 0x42, 0x00, 0x1f, 0xaa}, sps)
	assert.Equal(t, []byte{0x68, 0xce, 0x3c, 0x80}, pps)
}

func TestBuildSeqHeader(t *testing.T) {
	sps := []byte{0x67, 0x42, 0x00, 0x1f, 0xaa}
	pps := []byte{0x68, 0xce, 0x3c, 0x80}

	body, err := BuildSeqHeader(sps, pps)
	assert.Equal(t, nil, err)
	assert.Equal(t, byte(0x17), body[0])
	assert.Equal(t, byte(0x00), body[1])
	assert.Equal(t, byte(0x42), body[6]) // AVCProfileIndication = sps[1]
	assert.Equal(t, byte(0x00), body[7]) // profile_compatibility = sps[2]
	assert.Equal(t, byte(0x1f), body[8]) // AVCLevelIndication = sps[3]
	assert.Equal(t, byte(0xff), body[9])
	assert.Equal(t, byte(0xe1), body[10])
	assert.Equal(t, 11+2+len(sps)+1+2+len(pps), len(body))
}

func TestBuildSeqHeader_ShortSps(t *testing.T) {
	_, err := BuildSeqHeader([]byte{0x67, 0x42}, []byte{0x68})
	assert.Equal(t, base.ErrUnsupportedFormat, err)
}

func TestBuildFrameBody_ExactlyFiveBytesWhenOnlySpsPps(t *testing.T) {
	buf := []byte{
		0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x1f,
		0x00, 0x00, 0x00, 0x01, 0x68, 0xce, 0x3c, 0x80,
	}
	body := BuildFrameBody(buf, true)
	assert.Equal(t, 5, len(body))
}

func TestBuildFrameBody_LengthMatchesSpecFormula(t *testing.T) {
	nal1 := []byte{0x65, 0x01, 0x02, 0x03}
	nal2 := []byte{0x41, 0x04, 0x05}
	buf := []byte{}
	buf = append(buf, 0x00, 0x00, 0x00, 0x01)
	buf = append(buf, nal1...)
	buf = append(buf, 0x00, 0x00, 0x00, 0x01)
	buf = append(buf, nal2...)

	body := BuildFrameBody(buf, true)
	assert.Equal(t, byte(0x17), body[0])
	assert.Equal(t, byte(0x01), body[1])
	assert.Equal(t, 5+(4+len(nal1))+(4+len(nal2)), len(body))
}

func TestBuildFrameBody_InterFrameMarker(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x01, 0x41, 0x01}
	body := BuildFrameBody(buf, false)
	assert.Equal(t, byte(0x27), body[0])
}
