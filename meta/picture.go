package meta

import "github.com/pkg/errors"

// urlMIME is the sentinel MIME type signaling that a Picture's data is a URL
// rather than inline image bytes.
const urlMIME = "-->"

// PictureTypeName maps a Picture.Type value to its ID3v2 APIC taxonomy name.
var PictureTypeName = map[uint32]string{
	0:  "Other",
	1:  "32x32 file icon",
	2:  "Other file icon",
	3:  "Cover (front)",
	4:  "Cover (back)",
	5:  "Leaflet page",
	6:  "Media",
	7:  "Lead artist/performer/soloist",
	8:  "Artist/performer",
	9:  "Conductor",
	10: "Band/Orchestra",
	11: "Composer",
	12: "Lyricist/text writer",
	13: "Recording Location",
	14: "During recording",
	15: "During performance",
	16: "Movie/video screen capture",
	17: "A bright coloured fish",
	18: "Illustration",
	19: "Band/artist logotype",
	20: "Publisher/Studio logotype",
}

// PictureData is the tail of a Picture record: either raw image bytes, or —
// when the enclosing Picture's MIME type is "-->" — a UTF-8 URL pointing at
// the image.
type PictureData struct {
	// IsURL is true when URL should be used instead of Bytes.
	IsURL bool
	Bytes []byte
	URL   string
}

// Size returns the logical size of the picture data: len(URL) when IsURL,
// otherwise len(Bytes).
func (d PictureData) Size() int {
	if d.IsURL {
		return len(d.URL)
	}
	return len(d.Bytes)
}

// Picture is an attached-picture (APIC) record, most commonly cover art.
type Picture struct {
	// Type is the ID3v2 APIC picture type, 0..20.
	Type uint32
	// MIME is the MIME type, or the literal "-->" when Data holds a URL.
	MIME string
	// Desc is a UTF-8 description of the picture.
	Desc string
	Width, Height, ColorDepth, NColors uint32
	// Data is the picture payload: inline bytes, or a URL when MIME=="-->".
	Data PictureData
}

// IsFrontCover reports whether this is a Type 3 (front cover) picture.
func (p *Picture) IsFrontCover() bool { return p.Type == 3 }

// IsBackCover reports whether this is a Type 4 (back cover) picture.
func (p *Picture) IsBackCover() bool { return p.Type == 4 }

// DecodePicture parses a PICTURE block body:
//
//	type        uint32
//	mime_length uint32
//	mime_string [mime_length]byte
//	desc_length uint32
//	desc_string [desc_length]byte
//	width       uint32
//	height      uint32
//	color_depth uint32
//	n_colors    uint32
//	data_size   uint32
//	data        [remaining]byte
func DecodePicture(c *Cursor, length int, validate bool) (*Picture, error) {
	pic := new(Picture)
	var err error

	start := c.Pos()
	if pic.Type, err = c.ReadU32BE(); err != nil {
		return nil, err
	}
	if validate && pic.Type > 20 {
		return nil, errors.Errorf("meta: reserved PICTURE type %d", pic.Type)
	}

	mimeLen, err := c.ReadU32BE()
	if err != nil {
		return nil, err
	}
	mime, err := c.ReadBytes(int(mimeLen))
	if err != nil {
		return nil, err
	}
	pic.MIME = string(mime)

	descLen, err := c.ReadU32BE()
	if err != nil {
		return nil, err
	}
	desc, err := c.ReadBytes(int(descLen))
	if err != nil {
		return nil, err
	}
	pic.Desc = string(desc)

	if pic.Width, err = c.ReadU32BE(); err != nil {
		return nil, err
	}
	if pic.Height, err = c.ReadU32BE(); err != nil {
		return nil, err
	}
	if pic.ColorDepth, err = c.ReadU32BE(); err != nil {
		return nil, err
	}
	if pic.NColors, err = c.ReadU32BE(); err != nil {
		return nil, err
	}

	// The reported data_size is advisory: the remaining bytes of the
	// length-limited block body are authoritative, per spec's treatment of
	// data_size disagreements as non-fatal.
	if _, err := c.ReadU32BE(); err != nil {
		return nil, err
	}
	remaining := length - int(c.Pos()-start)
	if remaining < 0 {
		return nil, errors.Errorf("meta: invalid PICTURE block; fixed fields exceed declared length %d", length)
	}
	data, err := c.ReadBytes(remaining)
	if err != nil {
		return nil, err
	}

	if pic.MIME == urlMIME {
		pic.Data = PictureData{IsURL: true, URL: string(data)}
	} else {
		pic.Data = PictureData{Bytes: data}
	}
	return pic, nil
}
