// Package flacmeta decodes the metadata block chain of a FLAC (Free
// Lossless Audio Codec) file: the STREAMINFO/PADDING/APPLICATION/
// SEEKTABLE/VORBIS_COMMENT/CUESHEET/PICTURE blocks that precede a stream's
// audio frames. It does not decode audio frames, and it does not write or
// mutate FLAC files.
package flacmeta

import (
	"io"
	"os"

	"github.com/mewkiz/flacmeta/internal/bufseekio"
	"github.com/mewkiz/flacmeta/meta"
	"github.com/pkg/errors"
)

// Signature is present at the beginning of every FLAC stream.
const Signature = "fLaC"

// driverState names the BlockChainDriver's states, per the state machine
// named in the format's metadata-chain walk:
// BeforeMagic -> InChain -> LastBlockSeen -> Done.
type driverState int

const (
	stateBeforeMagic driverState = iota
	stateInChain
	stateLastBlockSeen
	stateDone
)

// Decoder reads the metadata block chain of a single FLAC file. A Decoder
// is not safe for concurrent use; create one Decoder per file.
type Decoder struct {
	path string
	cfg  config

	loaded   bool
	metadata *Metadata
	err      error
}

// Open returns a Decoder for the FLAC file at path. The file is not opened
// until Load is called.
func Open(path string, opts ...Option) (*Decoder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Decoder{path: path, cfg: cfg}, nil
}

// Load reads and decodes path's metadata block chain. Load is idempotent:
// the first call performs the read and caches the result (success or
// failure); every subsequent call returns the cached result without
// touching the file again.
func (d *Decoder) Load() (*Metadata, error) {
	if d.loaded {
		return d.metadata, d.err
	}
	d.loaded = true
	d.metadata, d.err = d.load()
	return d.metadata, d.err
}

func (d *Decoder) load() (*Metadata, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, errors.Wrapf(err, "flacmeta: open %s", d.path)
	}
	defer f.Close()

	rs := bufseekio.NewReadSeeker(f)
	md, err := decodeChain(rs, d.cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "flacmeta: %s", d.path)
	}
	return md, nil
}

// truncatedOrErr maps a short read inside a block body to the
// ErrTruncatedStream sentinel, leaving every other error untouched.
func truncatedOrErr(err error) error {
	cause := errors.Cause(err)
	if cause == io.EOF || cause == io.ErrUnexpectedEOF {
		return ErrTruncatedStream
	}
	return err
}

// decodeChain implements the BlockChainDriver: verify the magic, then walk
// the block chain to completion, dispatching each block body to the
// matching meta decoder and aggregating the results.
func decodeChain(r io.Reader, cfg config) (*Metadata, error) {
	state := stateBeforeMagic

	sigBuf := make([]byte, len(Signature))
	if _, err := io.ReadFull(r, sigBuf); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, ErrTruncatedStream
		}
		return nil, err
	}
	if string(sigBuf) != Signature {
		return nil, ErrNotAFlacFile
	}
	state = stateInChain

	md := &Metadata{}
	c := meta.NewCursor(r)

	for state == stateInChain {
		header, err := meta.ReadHeader(c)
		if err != nil {
			if errors.Cause(err) == io.EOF || errors.Cause(err) == io.ErrUnexpectedEOF {
				return nil, ErrUnterminatedChain
			}
			return nil, err
		}

		if header.Type == meta.TypeInvalid {
			return nil, ErrInvalidBlockType
		}
		if header.Type.IsReserved() {
			cfg.diagnostics.Warnf("unknown block type %d (length %d), skipping", uint8(header.Type), header.Length)
			if _, err := c.ReadBytes(header.Length); err != nil {
				return nil, truncatedOrErr(err)
			}
		} else if err := dispatchBlock(c, header, md, cfg); err != nil {
			return nil, truncatedOrErr(err)
		}

		if header.IsLast {
			state = stateLastBlockSeen
		}
	}
	// state == stateLastBlockSeen here; the chain is complete (stateDone).

	if md.streamInfo == nil {
		return nil, ErrMissingStreamInfo
	}
	return md, nil
}

// dispatchBlock decodes a single non-reserved block body and folds it into
// md, enforcing the singleton/duplicate rules from the format spec.
func dispatchBlock(c *meta.Cursor, header meta.Header, md *Metadata, cfg config) error {
	switch header.Type {
	case meta.TypeStreamInfo:
		if md.streamInfo != nil {
			return errors.Wrap(ErrDuplicateBlock, "STREAMINFO")
		}
		si, err := meta.DecodeStreamInfo(c, header.Length, cfg.validate)
		if err != nil {
			return err
		}
		md.streamInfo = si

	case meta.TypePadding:
		if cfg.tagsOnly {
			if _, err := c.ReadBytes(header.Length); err != nil {
				return err
			}
			md.paddingTotal += header.Length
			return nil
		}
		n, err := meta.DecodePadding(c, header.Length)
		if err != nil {
			return err
		}
		md.paddingTotal += n

	case meta.TypeApplication:
		if cfg.tagsOnly {
			_, err := c.ReadBytes(header.Length)
			return err
		}
		app, err := meta.DecodeApplication(c, header.Length, cfg.validate)
		if err != nil {
			return err
		}
		md.applications = append(md.applications, app)

	case meta.TypeSeekTable:
		if md.seekTable != nil {
			return errors.Wrap(ErrDuplicateBlock, "SEEKTABLE")
		}
		if cfg.tagsOnly {
			_, err := c.ReadBytes(header.Length)
			return err
		}
		st, err := meta.DecodeSeekTable(c, header.Length, cfg.validate)
		if err != nil {
			return err
		}
		md.seekTable = st

	case meta.TypeVorbisComment:
		if md.vorbisComment != nil {
			return errors.Wrap(ErrDuplicateBlock, "VORBIS_COMMENT")
		}
		policy := meta.KeepAll
		if cfg.ignoreDuplicates {
			policy = meta.FirstWins
		}
		vc, err := meta.DecodeVorbisComment(c, policy)
		if err != nil {
			return err
		}
		md.vorbisComment = vc

	case meta.TypeCueSheet:
		if md.cueSheet != nil {
			return errors.Wrap(ErrDuplicateBlock, "CUESHEET")
		}
		if cfg.tagsOnly {
			_, err := c.ReadBytes(header.Length)
			return err
		}
		cs, err := meta.DecodeCueSheet(c, cfg.validate)
		if err != nil {
			return err
		}
		md.cueSheet = cs

	case meta.TypePicture:
		pic, err := meta.DecodePicture(c, header.Length, cfg.validate)
		if err != nil {
			return err
		}
		if cfg.validate && (pic.IsFrontCover() || pic.IsBackCover()) {
			for _, existing := range md.pictures {
				if existing.Type == pic.Type {
					cfg.diagnostics.Warnf("duplicate cover art role for picture type %d", pic.Type)
					break
				}
			}
		}
		md.pictures = append(md.pictures, pic)
	}
	return nil
}
