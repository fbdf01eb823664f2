package flacmeta

import "github.com/mewkiz/flacmeta/meta"

// Metadata is the aggregate of every metadata block decoded from a FLAC
// stream's block chain. It is immutable once returned by Decoder.Load.
type Metadata struct {
	streamInfo    *meta.StreamInfo
	seekTable     *meta.SeekTable
	vorbisComment *meta.VorbisComment
	cueSheet      *meta.CueSheet
	applications  []*meta.Application
	pictures      []*meta.Picture
	paddingTotal  int
}

// StreamInfo returns the stream's required STREAMINFO block. It is never
// nil for a Metadata returned by a successful Load.
func (m *Metadata) StreamInfo() *meta.StreamInfo {
	return m.streamInfo
}

// SeekTable returns the stream's SEEKTABLE block, if present.
func (m *Metadata) SeekTable() (*meta.SeekTable, bool) {
	return m.seekTable, m.seekTable != nil
}

// VorbisComment returns the stream's VORBIS_COMMENT block, if present.
func (m *Metadata) VorbisComment() (*meta.VorbisComment, bool) {
	return m.vorbisComment, m.vorbisComment != nil
}

// CueSheet returns the stream's CUESHEET block, if present.
func (m *Metadata) CueSheet() (*meta.CueSheet, bool) {
	return m.cueSheet, m.cueSheet != nil
}

// Applications returns every APPLICATION block, in file order. May be empty.
func (m *Metadata) Applications() []*meta.Application {
	return m.applications
}

// Pictures returns every PICTURE block, in file order. May be empty.
func (m *Metadata) Pictures() []*meta.Picture {
	return m.pictures
}

// PaddingTotal returns the sum, in bytes, of every PADDING block's length.
func (m *Metadata) PaddingTotal() int {
	return m.paddingTotal
}
