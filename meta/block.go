package meta

import "fmt"

// Type identifies a metadata block's content.
type Type uint8

// Metadata block types, per the FLAC format specification.
const (
	TypeStreamInfo    Type = 0
	TypePadding       Type = 1
	TypeApplication   Type = 2
	TypeSeekTable     Type = 3
	TypeVorbisComment Type = 4
	TypeCueSheet      Type = 5
	TypePicture       Type = 6
	// TypeInvalid (127) is decoded by ReadHeader like any other type; the
	// driver treats a Header carrying it as fatal.
	TypeInvalid Type = 127
)

func (t Type) String() string {
	switch t {
	case TypeStreamInfo:
		return "STREAMINFO"
	case TypePadding:
		return "PADDING"
	case TypeApplication:
		return "APPLICATION"
	case TypeSeekTable:
		return "SEEKTABLE"
	case TypeVorbisComment:
		return "VORBIS_COMMENT"
	case TypeCueSheet:
		return "CUESHEET"
	case TypePicture:
		return "PICTURE"
	case TypeInvalid:
		return "INVALID"
	default:
		return fmt.Sprintf("RESERVED(%d)", uint8(t))
	}
}

// IsReserved reports whether t falls in the 7..126 reserved range: known to
// the format, unknown to this decoder.
func (t Type) IsReserved() bool {
	return t >= 7 && t <= 126
}

// Header is the 4-byte header that precedes every metadata block body.
type Header struct {
	// IsLast is true if this is the last metadata block before the audio
	// frames.
	IsLast bool
	// Type identifies the block body's format.
	Type Type
	// Length is the size, in bytes, of the block body that follows.
	Length int
}

// ReadHeader reads and decodes a 4-byte metadata block header:
//
//	1 bit   is_last
//	7 bits  block_type
//	24 bits length
func ReadHeader(c *Cursor) (Header, error) {
	b0, err := c.ReadU8()
	if err != nil {
		return Header{}, err
	}
	length, err := c.ReadU24BE()
	if err != nil {
		return Header{}, err
	}
	return Header{
		IsLast: b0&0x80 != 0,
		Type:   Type(b0 & 0x7F),
		Length: int(length),
	}, nil
}
