package flacmeta

import "github.com/pkg/errors"

// Fatal error kinds returned by Decoder.Load. Use errors.Is (or
// github.com/pkg/errors.Cause plus ==) to test against these; Load wraps them
// with the file path (and ErrDuplicateBlock with the block type name) via
// pkg/errors.
var (
	// ErrNotAFlacFile is returned when the leading 4 bytes are not "fLaC".
	ErrNotAFlacFile = errors.New("flacmeta: not a FLAC file")
	// ErrTruncatedStream is returned on a short read of the signature or of
	// a block body. A short read of a block header is reported as
	// ErrUnterminatedChain instead.
	ErrTruncatedStream = errors.New("flacmeta: truncated stream")
	// ErrInvalidBlockType is returned for block type 127.
	ErrInvalidBlockType = errors.New("flacmeta: invalid block type")
	// ErrUnterminatedChain is returned when EOF is reached before a block
	// with the last-metadata-block flag set.
	ErrUnterminatedChain = errors.New("flacmeta: unterminated metadata block chain")
	// ErrDuplicateBlock is returned when a singleton block type (STREAMINFO,
	// SEEKTABLE, VORBIS_COMMENT, CUESHEET) appears more than once.
	ErrDuplicateBlock = errors.New("flacmeta: duplicate singleton block")
	// ErrMissingStreamInfo is returned when the chain ends without ever
	// having seen a STREAMINFO block.
	ErrMissingStreamInfo = errors.New("flacmeta: missing STREAMINFO block")
)
