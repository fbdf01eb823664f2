package meta

import (
	"encoding/hex"

	"github.com/mewkiz/flacmeta/internal/md5sum"
	"github.com/pkg/errors"
)

// StreamInfoSize is the fixed size, in bytes, of a STREAMINFO block body.
const StreamInfoSize = 34

// StreamInfo describes stream-wide parameters. It must be present, and must
// be the first metadata block, in every FLAC stream.
type StreamInfo struct {
	// Minimum block size (in samples) used in the stream.
	MinBlockSize uint16
	// Maximum block size (in samples) used in the stream.
	MaxBlockSize uint16
	// Minimum frame size (in bytes), or 0 if unknown.
	MinFrameSize uint32
	// Maximum frame size (in bytes), or 0 if unknown.
	MaxFrameSize uint32
	// Sample rate in Hz.
	SampleRate uint32
	// Number of channels, 1..8.
	NChannels uint8
	// Bits per sample, 4..32.
	BitsPerSample uint8
	// Total number of inter-channel samples, or 0 if unknown.
	NSamples uint64
	// MD5 signature of the unencoded audio data.
	MD5sum [16]byte
}

// MD5Hex renders the STREAMINFO MD5 signature as a lowercase hex string.
func (si *StreamInfo) MD5Hex() string {
	return hex.EncodeToString(si.MD5sum[:])
}

// VerifyAudioMD5 reports whether the MD5 digest of pcm (raw unencoded audio
// data, decoded elsewhere) matches the signature recorded in this
// STREAMINFO block.
func (si *StreamInfo) VerifyAudioMD5(pcm []byte) bool {
	return md5sum.Sum(pcm) == si.MD5sum
}

// DecodeStreamInfo parses a STREAMINFO block body.
//
//	min_block_size  uint16
//	max_block_size  uint16
//	min_frame_size  uint24
//	max_frame_size  uint24
//	sample_rate     uint20
//	n_channels      uint3  // stored value is (n_channels - 1)
//	bits_per_sample uint5  // stored value is (bits_per_sample - 1)
//	n_samples       uint36
//	md5sum          [16]byte
func DecodeStreamInfo(c *Cursor, length int, validate bool) (*StreamInfo, error) {
	if validate && length != StreamInfoSize {
		return nil, errors.Errorf("meta: invalid STREAMINFO size; want %d, got %d", StreamInfoSize, length)
	}

	si := new(StreamInfo)
	var err error
	if si.MinBlockSize, err = c.ReadU16BE(); err != nil {
		return nil, err
	}
	if si.MaxBlockSize, err = c.ReadU16BE(); err != nil {
		return nil, err
	}
	if si.MinFrameSize, err = c.ReadU24BE(); err != nil {
		return nil, err
	}
	if si.MaxFrameSize, err = c.ReadU24BE(); err != nil {
		return nil, err
	}

	// sample_rate (20 bits) | n_channels (3 bits) | bits_per_sample (5 bits) |
	// n_samples (36 bits) packed into 8 bytes.
	packed, err := c.ReadU64BE()
	if err != nil {
		return nil, err
	}
	si.SampleRate = uint32(packed >> 44)
	si.NChannels = uint8((packed>>41)&0x7) + 1
	si.BitsPerSample = uint8((packed>>36)&0x1F) + 1
	si.NSamples = packed & 0xFFFFFFFFF

	md5, err := c.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	copy(si.MD5sum[:], md5)

	if validate {
		if si.MinBlockSize < 16 {
			return nil, errors.Errorf("meta: invalid minimum block size; want >= 16, got %d", si.MinBlockSize)
		}
		if si.MaxBlockSize < 16 || si.MaxBlockSize > 65535 {
			return nil, errors.Errorf("meta: invalid maximum block size; want >= 16 and <= 65535, got %d", si.MaxBlockSize)
		}
	}
	return si, nil
}
