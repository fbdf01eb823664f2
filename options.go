package flacmeta

// Option configures a Decoder. See WithTagsOnly and WithValidation.
type Option func(*config)

type config struct {
	tagsOnly         bool
	validate         bool
	ignoreDuplicates bool
	diagnostics      DiagnosticsSink
}

func defaultConfig() config {
	return config{
		tagsOnly:         false,
		validate:         true,
		ignoreDuplicates: false,
		diagnostics:      NewStdDiagnostics(),
	}
}

// WithTagsOnly, when enabled, skips decoding the bulk fields of every block
// type except VORBIS_COMMENT and PICTURE: PADDING, APPLICATION, SEEKTABLE,
// and CUESHEET bodies are read and discarded rather than decoded into
// structures. STREAMINFO is always decoded, since Metadata.StreamInfo must
// always be present after a successful Load.
func WithTagsOnly(tagsOnly bool) Option {
	return func(c *config) { c.tagsOnly = tagsOnly }
}

// WithValidation enables or disables the non-structural constraint checks
// (reserved-bit zeroing, CD-DA offset/count limits, seek-point ordering,
// and so on). Structural checks needed to safely advance the read cursor
// are always enforced regardless of this setting.
func WithValidation(validate bool) Option {
	return func(c *config) { c.validate = validate }
}

// WithDiagnostics overrides the DiagnosticsSink that receives non-fatal
// warnings. The default writes to os.Stderr.
func WithDiagnostics(sink DiagnosticsSink) Option {
	return func(c *config) { c.diagnostics = sink }
}

// WithIgnoreDuplicates controls how repeated VORBIS_COMMENT values for the
// same key are folded into Metadata.VorbisComment. When ignoreDuplicates is
// true, only the first-seen value for each distinct (key, value) pair is
// kept (meta.FirstWins); the default, false, keeps every value in file
// order (meta.KeepAll).
func WithIgnoreDuplicates(ignoreDuplicates bool) Option {
	return func(c *config) { c.ignoreDuplicates = ignoreDuplicates }
}
