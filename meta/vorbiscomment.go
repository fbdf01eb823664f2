package meta

import (
	"strings"

	"github.com/pkg/errors"
)

// DedupPolicy controls how repeated values for the same Vorbis comment key
// are inserted into a VorbisComment's field map.
type DedupPolicy int

const (
	// KeepAll retains every value for a key, in file order, including
	// duplicates.
	KeepAll DedupPolicy = iota
	// FirstWins keeps only the first-seen value for each distinct
	// (key, value) pair, preserving first-seen order.
	FirstWins
)

// VorbisComment is a Vorbis comment ("FLAC tags") dictionary: a vendor
// string plus a multimap of uppercased field name to an ordered list of
// values.
type VorbisComment struct {
	// Vendor identifies the encoder that wrote the stream.
	Vendor string
	// Fields maps an uppercased field name to its values, in insertion
	// order.
	Fields map[string][]string
	// NFields is the number of (name, value) entries read from the block,
	// regardless of DedupPolicy.
	NFields int
}

// knownFields lists the field names the accessor layer recognizes; any other
// key is retained verbatim in Fields but has no dedicated accessor.
var knownFields = []string{
	"ALBUM", "ALBUMARTIST", "ARTIST", "COMMENT", "COMPOSER", "CONTACT",
	"COPYRIGHT", "DATE", "DESCRIPTION", "DISCNUMBER", "DISCTOTAL",
	"ENCODER", "GENRE", "ISRC", "LICENSE", "LOCATION", "ORGANIZATION",
	"PERFORMER", "TITLE", "TRACKNUMBER", "TRACKTOTAL", "VERSION",
}

func (vc *VorbisComment) get(key string) []string {
	return vc.Fields[key]
}

// Title returns the TITLE field's values.
func (vc *VorbisComment) Title() []string { return vc.get("TITLE") }

// Artist returns the ARTIST field's values.
func (vc *VorbisComment) Artist() []string { return vc.get("ARTIST") }

// Album returns the ALBUM field's values.
func (vc *VorbisComment) Album() []string { return vc.get("ALBUM") }

// AlbumArtist returns the ALBUMARTIST field's values.
func (vc *VorbisComment) AlbumArtist() []string { return vc.get("ALBUMARTIST") }

// Genre returns the GENRE field's values.
func (vc *VorbisComment) Genre() []string { return vc.get("GENRE") }

// TrackNumber returns the TRACKNUMBER field's values.
func (vc *VorbisComment) TrackNumber() []string { return vc.get("TRACKNUMBER") }

// TrackTotal returns the TRACKTOTAL field's values.
func (vc *VorbisComment) TrackTotal() []string { return vc.get("TRACKTOTAL") }

// DiscNumber returns the DISCNUMBER field's values.
func (vc *VorbisComment) DiscNumber() []string { return vc.get("DISCNUMBER") }

// DiscTotal returns the DISCTOTAL field's values.
func (vc *VorbisComment) DiscTotal() []string { return vc.get("DISCTOTAL") }

// Composer returns the COMPOSER field's values.
func (vc *VorbisComment) Composer() []string { return vc.get("COMPOSER") }

// Comment returns the COMMENT field's values.
func (vc *VorbisComment) Comment() []string { return vc.get("COMMENT") }

// Copyright returns the COPYRIGHT field's values.
func (vc *VorbisComment) Copyright() []string { return vc.get("COPYRIGHT") }

// ISRC returns the ISRC field's values.
func (vc *VorbisComment) ISRC() []string { return vc.get("ISRC") }

// Date returns the DATE field's values, falling back to YEAR when DATE is
// absent.
func (vc *VorbisComment) Date() []string {
	if v := vc.get("DATE"); len(v) > 0 {
		return v
	}
	return vc.get("YEAR")
}

// KnownFields returns the subset of knownFields present in vc, in the
// fixed order knownFields declares them.
func (vc *VorbisComment) KnownFields() []string {
	var out []string
	for _, k := range knownFields {
		if _, ok := vc.Fields[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// DecodeVorbisComment parses a VORBIS_COMMENT block body:
//
//	vendor_length uint32 (little-endian)
//	vendor_string [vendor_length]byte
//	field_count   uint32 (little-endian)
//	fields        [field_count]field
//
//	type field struct {
//	    length uint32 (little-endian)
//	    string [length]byte // "KEY=VALUE"
//	}
func DecodeVorbisComment(c *Cursor, policy DedupPolicy) (*VorbisComment, error) {
	vendorLen, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	vendor, err := c.ReadBytes(int(vendorLen))
	if err != nil {
		return nil, err
	}

	fieldCount, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}

	vc := &VorbisComment{
		Vendor: string(vendor),
		Fields: make(map[string][]string),
	}

	seen := make(map[string]map[string]bool)
	for i := uint32(0); i < fieldCount; i++ {
		fieldLen, err := c.ReadU32LE()
		if err != nil {
			return nil, err
		}
		raw, err := c.ReadBytes(int(fieldLen))
		if err != nil {
			return nil, err
		}
		vc.NFields++

		field := string(raw)
		pos := strings.IndexByte(field, '=')
		if pos == -1 {
			return nil, errors.Errorf("meta: malformed Vorbis comment field; no '=' in %q", field)
		}
		key := strings.ToUpper(field[:pos])
		value := field[pos+1:]

		if policy == FirstWins {
			if seen[key] == nil {
				seen[key] = make(map[string]bool)
			}
			if seen[key][value] {
				continue
			}
			seen[key][value] = true
		}
		vc.Fields[key] = append(vc.Fields[key], value)
	}
	return vc, nil
}
