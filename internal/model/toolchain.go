package model

// Toolchain is the resolved state of the external tools. It is computed once at
// startup, may be updated once by the bootstrap installer, and is passed by value
// to whatever needs it.
type Toolchain struct {
	TranscoderPath string // empty when no working ffmpeg was found
	RuntimePresent bool   // JS runtime used by the extractor for some sites
}

// HasTranscoder reports whether a working transcoder was resolved
func (t Toolchain) HasTranscoder() bool {
	return t.TranscoderPath != ""
}

// WithTranscoder returns a copy with the transcoder path set
func (t Toolchain) WithTranscoder(path string) Toolchain {
	t.TranscoderPath = path
	return t
}
