package meta

import "github.com/pkg/errors"

// RegisteredApplications maps a registered FLAC APPLICATION id to the name
// of the application that registered it.
//
// ref: https://www.xiph.org/flac/id.html
var RegisteredApplications = map[string]string{
	"ATCH": "FlacFile",
	"BSOL": "beSolo",
	"BUGS": "Bugs Player",
	"Cues": "GoldWave cue points",
	"Fica": "CUE Splitter",
	"Ftol": "flac-tools",
	"MOTB": "MOTB MetaCzar",
	"MPSE": "MP3 Stream Editor",
	"MuML": "MusicML: Music Metadata Language",
	"RIFF": "Sound Devices RIFF chunk storage",
	"SFFL": "Sound Font FLAC",
	"SONY": "Sony Creative Software",
	"SQEZ": "flacsqueeze",
	"TtWv": "TwistedWave",
	"UITS": "UITS Embedding tools",
	"aiff": "FLAC AIFF chunk storage",
	"imag": "flac-image application",
	"peem": "Parseable Embedded Extensible Metadata",
	"qfst": "QFLAC Studio",
	"riff": "FLAC RIFF chunk storage",
	"tune": "TagTuner",
	"xbat": "XBAT",
	"xmcd": "xmcd",
}

// Application is third-party-application-specific data. The only mandatory
// field is a 4-byte id; the remainder of the block is opaque to this
// decoder.
type Application struct {
	// ID is the 4-byte (ASCII) registered application id.
	ID string
	// Data is the application-defined payload.
	Data []byte
}

// KnownName returns the registered name for app's id, if any.
func (app *Application) KnownName() (string, bool) {
	name, ok := RegisteredApplications[app.ID]
	return name, ok
}

// DecodeApplication parses an APPLICATION block body:
//
//	id   [4]byte
//	data [length-4]byte
func DecodeApplication(c *Cursor, length int, validate bool) (*Application, error) {
	if length < 4 {
		return nil, errors.Errorf("meta: invalid APPLICATION block; want >= 4 bytes, got %d", length)
	}
	if validate && (length-4)%8 != 0 {
		return nil, errors.Errorf("meta: invalid APPLICATION block size; (length-4)=%d must be a multiple of 8", length-4)
	}

	idBytes, err := c.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	data, err := c.ReadBytes(length - 4)
	if err != nil {
		return nil, err
	}
	return &Application{ID: string(idBytes), Data: data}, nil
}
