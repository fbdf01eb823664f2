package meta

import "github.com/pkg/errors"

// SeekPointSize is the encoded size, in bytes, of a single seek point.
const SeekPointSize = 18

// PlaceholderSampleNum is the sentinel sample number used by placeholder
// seek points, reserving table space for later insertion.
const PlaceholderSampleNum = 0xFFFFFFFFFFFFFFFF

// SeekTable is an ordered sequence of precalculated seek points.
type SeekTable struct {
	Points []SeekPoint
}

// SeekPoint identifies the byte offset, within the audio-frame region, of a
// target frame's first sample.
type SeekPoint struct {
	// SampleNum is the sample number of the first sample in the target
	// frame, or PlaceholderSampleNum.
	SampleNum uint64
	// Offset is the byte offset from the first audio frame's header to the
	// target frame's header.
	Offset uint64
	// NSamples is the number of samples in the target frame.
	NSamples uint16
}

// DecodeSeekTable parses a SEEKTABLE block body: length/18 SeekPoints, each:
//
//	sample_num uint64
//	offset     uint64
//	n_samples  uint16
func DecodeSeekTable(c *Cursor, length int, validate bool) (*SeekTable, error) {
	if validate && length%SeekPointSize != 0 {
		return nil, errors.Errorf("meta: invalid SEEKTABLE size; %d is not a multiple of %d", length, SeekPointSize)
	}

	st := new(SeekTable)
	n := length / SeekPointSize
	st.Points = make([]SeekPoint, n)
	var prev uint64
	var hasPrev bool
	for i := 0; i < n; i++ {
		p := &st.Points[i]
		var err error
		if p.SampleNum, err = c.ReadU64BE(); err != nil {
			return nil, err
		}
		if p.Offset, err = c.ReadU64BE(); err != nil {
			return nil, err
		}
		if p.NSamples, err = c.ReadU16BE(); err != nil {
			return nil, err
		}

		if p.SampleNum == PlaceholderSampleNum {
			continue
		}
		if validate && hasPrev && prev >= p.SampleNum {
			return nil, errors.Errorf("meta: invalid SEEKTABLE; sample number %d at point %d is not greater than the preceding %d", p.SampleNum, i, prev)
		}
		prev = p.SampleNum
		hasPrev = true
	}
	return st, nil
}
