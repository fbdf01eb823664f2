// Command flacmeta lists the decoded metadata blocks of one or more FLAC
// files, in the spirit of the reference metaflac tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mewkiz/flacmeta"
	"github.com/mewkiz/flacmeta/meta"
)

var (
	flagTagsOnly         bool
	flagNoValidate       bool
	flagIgnoreDuplicates bool
)

func init() {
	flag.BoolVar(&flagTagsOnly, "tags-only", false, "skip bulk fields of non-tag blocks")
	flag.BoolVar(&flagNoValidate, "no-validate", false, "disable non-structural validation")
	flag.BoolVar(&flagIgnoreDuplicates, "ignore-duplicates", false, "drop repeated identical values of a Vorbis comment key, keeping the first")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: flacmeta [OPTION]... FILE...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	for _, path := range flag.Args() {
		if err := list(path); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func list(path string) error {
	opts := []flacmeta.Option{
		flacmeta.WithTagsOnly(flagTagsOnly),
		flacmeta.WithValidation(!flagNoValidate),
		flacmeta.WithIgnoreDuplicates(flagIgnoreDuplicates),
	}
	dec, err := flacmeta.Open(path, opts...)
	if err != nil {
		return err
	}
	md, err := dec.Load()
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", path)
	listStreamInfo(md.StreamInfo())
	if st, ok := md.SeekTable(); ok {
		listSeekTable(st)
	}
	if vc, ok := md.VorbisComment(); ok {
		listVorbisComment(vc)
	}
	if cs, ok := md.CueSheet(); ok {
		listCueSheet(cs)
	}
	for _, app := range md.Applications() {
		listApplication(app)
	}
	for i, pic := range md.Pictures() {
		listPicture(i, pic)
	}
	if n := md.PaddingTotal(); n > 0 {
		fmt.Printf("  PADDING: %d bytes\n", n)
	}
	return nil
}

func listStreamInfo(si *meta.StreamInfo) {
	fmt.Println("  STREAMINFO")
	fmt.Printf("    minimum blocksize: %d samples\n", si.MinBlockSize)
	fmt.Printf("    maximum blocksize: %d samples\n", si.MaxBlockSize)
	fmt.Printf("    minimum framesize: %d bytes\n", si.MinFrameSize)
	fmt.Printf("    maximum framesize: %d bytes\n", si.MaxFrameSize)
	fmt.Printf("    sample_rate: %d Hz\n", si.SampleRate)
	fmt.Printf("    channels: %d\n", si.NChannels)
	fmt.Printf("    bits-per-sample: %d\n", si.BitsPerSample)
	fmt.Printf("    total samples: %d\n", si.NSamples)
	fmt.Printf("    MD5 signature: %s\n", si.MD5Hex())
}

func listSeekTable(st *meta.SeekTable) {
	fmt.Printf("  SEEKTABLE: %d points\n", len(st.Points))
	for i, p := range st.Points {
		if p.SampleNum == meta.PlaceholderSampleNum {
			fmt.Printf("    point %d: PLACEHOLDER\n", i)
			continue
		}
		fmt.Printf("    point %d: sample_number=%d, stream_offset=%d, frame_samples=%d\n", i, p.SampleNum, p.Offset, p.NSamples)
	}
}

func listVorbisComment(vc *meta.VorbisComment) {
	fmt.Printf("  VORBIS_COMMENT: vendor=%q, %d fields\n", vc.Vendor, vc.NFields)
	for _, key := range vc.KnownFields() {
		for _, v := range vc.Fields[key] {
			fmt.Printf("    %s=%s\n", key, v)
		}
	}
}

func listCueSheet(cs *meta.CueSheet) {
	fmt.Printf("  CUESHEET: MCN=%q, lead-in=%d, CD-DA=%t, %d tracks\n", cs.MCN, cs.LeadInSamples, cs.IsCompactDisc, len(cs.Tracks))
	for _, t := range cs.Tracks {
		fmt.Printf("    track %d: offset=%d, audio=%t, pre-emphasis=%t, %d index points\n", t.Number, t.Offset, t.Audio, t.PreEmphasis, len(t.IndexPoints))
	}
}

func listApplication(app *meta.Application) {
	name, _ := app.KnownName()
	fmt.Printf("  APPLICATION: id=%q (%s), %d bytes of data\n", app.ID, name, len(app.Data))
}

func listPicture(i int, pic *meta.Picture) {
	fmt.Printf("  PICTURE[%d]: type=%d (%s), mime=%q, %dx%d, %d bytes\n", i, pic.Type, meta.PictureTypeName[pic.Type], pic.MIME, pic.Width, pic.Height, pic.Data.Size())
}
