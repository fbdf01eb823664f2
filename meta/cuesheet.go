package meta

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// CD-DA (Red Book) constraints.
const (
	cdSampleGrid    = 588
	cdMaxTracks     = 100
	cdLeadOutNum    = 170
	nonCDLeadOutNum = 255
)

// CueSheet describes track and index-point layout, compatible with Red Book
// CD-DA discs.
type CueSheet struct {
	// MCN is the media catalog number, trailing NULs stripped.
	MCN string
	// LeadInSamples has meaning only when IsCompactDisc.
	LeadInSamples uint64
	// IsCompactDisc is true if this cue sheet corresponds to a CD-DA disc.
	IsCompactDisc bool
	// Tracks is always non-empty; the last entry is the lead-out track.
	Tracks []CueSheetTrack
}

// CueSheetTrack is a single track (or, as the final entry, the lead-out
// track) within a CueSheet.
type CueSheetTrack struct {
	Offset uint64
	Number uint8
	// ISRC is empty when absent.
	ISRC string
	// Audio is true for an audio track, false for a data track.
	Audio bool
	// PreEmphasis corresponds to the CD-DA Q-channel control bit 5.
	PreEmphasis bool
	IndexPoints []CueSheetTrackIndex
}

// CueSheetTrackIndex is a position within a CueSheetTrack.
type CueSheetTrackIndex struct {
	// Offset is relative to the enclosing track's Offset.
	Offset uint64
	Number uint8
}

func reservedErr(what string) error {
	return errors.Errorf("meta: CUESHEET %s reserved bits must be zero", what)
}

// readCueSheetFlagByte reads the CUESHEET's single top-level flag byte (1
// flag bit + 7 reserved bits), via a bit reader over the single byte just
// consumed from c. When validate is false, a non-zero reserved field is
// ignored rather than rejected.
func readCueSheetFlagByte(c *Cursor, validate bool) (isCD bool, err error) {
	b, err := c.ReadU8()
	if err != nil {
		return false, err
	}
	br := bitio.NewReader(bytes.NewReader([]byte{b}))
	isCD, err = br.ReadBool()
	if err != nil {
		return false, err
	}
	reserved, err := br.ReadBits(7)
	if err != nil {
		return false, err
	}
	if validate && reserved != 0 {
		return false, reservedErr("flag byte")
	}
	return isCD, nil
}

// readTrackFlagByte reads a CUESHEET track's flag byte (2 flag bits + 6
// reserved bits): is-non-audio, has-pre-emphasis.
func readTrackFlagByte(c *Cursor, validate bool) (nonAudio, preEmphasis bool, err error) {
	b, err := c.ReadU8()
	if err != nil {
		return false, false, err
	}
	br := bitio.NewReader(bytes.NewReader([]byte{b}))
	nonAudio, err = br.ReadBool()
	if err != nil {
		return false, false, err
	}
	preEmphasis, err = br.ReadBool()
	if err != nil {
		return false, false, err
	}
	reserved, err := br.ReadBits(6)
	if err != nil {
		return false, false, err
	}
	if validate && reserved != 0 {
		return false, false, reservedErr("track flag byte")
	}
	return nonAudio, preEmphasis, nil
}

// readReservedZero reads and discards n bytes, failing when validate is set
// and any of them is non-zero.
func readReservedZero(c *Cursor, n int, what string, validate bool) error {
	buf, err := c.ReadBytes(n)
	if err != nil {
		return err
	}
	if !validate {
		return nil
	}
	for _, b := range buf {
		if b != 0 {
			return reservedErr(what)
		}
	}
	return nil
}

// DecodeCueSheet parses a CUESHEET block body:
//
//	mcn              [128]byte
//	lead_in_samples  uint64
//	is_cd_da         bool
//	_                uint7  // reserved
//	_                [258]byte // reserved
//	n_tracks         uint8
//	tracks           [n_tracks]track
//
//	type track struct {
//	    offset            uint64
//	    number            uint8
//	    isrc              [12]byte
//	    is_non_audio      bool
//	    has_pre_emphasis  bool
//	    _                 uint6 // reserved
//	    _                 [13]byte // reserved
//	    n_index_points    uint8
//	    index_points      [n_index_points]index_point
//	}
//
//	type index_point struct {
//	    offset uint64
//	    number uint8
//	    _      [3]byte // reserved
//	}
func DecodeCueSheet(c *Cursor, validate bool) (*CueSheet, error) {
	cs := new(CueSheet)
	var err error

	if cs.MCN, err = c.ReadCString(128); err != nil {
		return nil, err
	}
	if cs.LeadInSamples, err = c.ReadU64BE(); err != nil {
		return nil, err
	}

	if cs.IsCompactDisc, err = readCueSheetFlagByte(c, validate); err != nil {
		return nil, err
	}
	if err := readReservedZero(c, 258, "top-level", validate); err != nil {
		return nil, err
	}

	if validate && !cs.IsCompactDisc && cs.LeadInSamples != 0 {
		return nil, errors.Errorf("meta: invalid CUESHEET; lead-in sample count must be 0 for non CD-DA, got %d", cs.LeadInSamples)
	}

	nTracks, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	if validate {
		// The last track is the lead-out; at least one track must precede it.
		if nTracks < 2 {
			return nil, errors.New("meta: invalid CUESHEET; no tracks specified")
		}
		if cs.IsCompactDisc && int(nTracks) > cdMaxTracks {
			return nil, errors.Errorf("meta: invalid CUESHEET; too many tracks for CD-DA, want <= %d, got %d", cdMaxTracks, nTracks)
		}
		if cs.IsCompactDisc {
			if l := len(cs.MCN); l != 0 && l != 13 {
				return nil, errors.Errorf("meta: invalid CUESHEET; CD-DA media catalog number must be 0 or 13 bytes, got %d", l)
			}
		}
	}

	cs.Tracks = make([]CueSheetTrack, nTracks)
	seenNums := make(map[uint8]bool)
	for i := range cs.Tracks {
		track := &cs.Tracks[i]
		isLast := i == len(cs.Tracks)-1

		if track.Offset, err = c.ReadU64BE(); err != nil {
			return nil, err
		}
		if validate && cs.IsCompactDisc && track.Offset%cdSampleGrid != 0 {
			return nil, errors.Errorf("meta: invalid CUESHEET track %d; offset %d is not a multiple of %d", i, track.Offset, cdSampleGrid)
		}

		if track.Number, err = c.ReadU8(); err != nil {
			return nil, err
		}
		if validate {
			if track.Number == 0 {
				return nil, errors.Errorf("meta: invalid CUESHEET track %d; track number 0 is not allowed", i)
			}
			if seenNums[track.Number] {
				return nil, errors.Errorf("meta: invalid CUESHEET track %d; duplicate track number %d", i, track.Number)
			}
			seenNums[track.Number] = true
		}

		isrc, err := c.ReadCString(12)
		if err != nil {
			return nil, err
		}
		track.ISRC = isrc

		nonAudio, preEmphasis, err := readTrackFlagByte(c, validate)
		if err != nil {
			return nil, err
		}
		track.Audio = !nonAudio
		track.PreEmphasis = preEmphasis

		if err := readReservedZero(c, 13, "track", validate); err != nil {
			return nil, err
		}

		if validate {
			if isLast {
				wantNum := uint8(nonCDLeadOutNum)
				if cs.IsCompactDisc {
					wantNum = cdLeadOutNum
				}
				if track.Number != wantNum {
					return nil, errors.Errorf("meta: invalid CUESHEET; lead-out track number must be %d, got %d", wantNum, track.Number)
				}
			} else if cs.IsCompactDisc && track.Number > 99 {
				return nil, errors.Errorf("meta: invalid CUESHEET track %d; CD-DA track number must be <= 99, got %d", i, track.Number)
			}
		}

		nIndex, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		if validate {
			if isLast {
				if nIndex != 0 {
					return nil, errors.Errorf("meta: invalid CUESHEET; lead-out track must have 0 index points, got %d", nIndex)
				}
			} else {
				if nIndex < 1 {
					return nil, errors.Errorf("meta: invalid CUESHEET track %d; must have >= 1 index point, got 0", i)
				}
				if cs.IsCompactDisc && int(nIndex) > cdMaxTracks {
					return nil, errors.Errorf("meta: invalid CUESHEET track %d; too many index points for CD-DA, want <= %d, got %d", i, cdMaxTracks, nIndex)
				}
			}
		}

		track.IndexPoints = make([]CueSheetTrackIndex, nIndex)
		var prevIndexNum uint8
		for j := range track.IndexPoints {
			idx := &track.IndexPoints[j]
			if idx.Offset, err = c.ReadU64BE(); err != nil {
				return nil, err
			}
			if validate && cs.IsCompactDisc && idx.Offset%cdSampleGrid != 0 {
				return nil, errors.Errorf("meta: invalid CUESHEET track %d index %d; offset %d is not a multiple of %d", i, j, idx.Offset, cdSampleGrid)
			}
			if idx.Number, err = c.ReadU8(); err != nil {
				return nil, err
			}
			if err := readReservedZero(c, 3, "index point", validate); err != nil {
				return nil, err
			}

			if validate {
				if j == 0 {
					if idx.Number != 0 && idx.Number != 1 {
						return nil, errors.Errorf("meta: invalid CUESHEET track %d; first index point number must be 0 or 1, got %d", i, idx.Number)
					}
				} else if idx.Number != prevIndexNum+1 {
					return nil, errors.Errorf("meta: invalid CUESHEET track %d index %d; index numbers must increase by 1, got %d after %d", i, j, idx.Number, prevIndexNum)
				}
				if idx.Number > 99 {
					return nil, errors.Errorf("meta: invalid CUESHEET track %d index %d; number must be <= 99, got %d", i, j, idx.Number)
				}
				prevIndexNum = idx.Number
			}
		}
	}

	return cs, nil
}
