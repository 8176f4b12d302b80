package model

// PostProcessorKind identifies a step run by the transcoder after the fetch
type PostProcessorKind string

const (
	// PostProcessExtractAudio converts the fetched stream to an audio file
	PostProcessExtractAudio PostProcessorKind = "extract_audio"

	// PostProcessRemux repackages the merged result into Container without re-encoding
	PostProcessRemux PostProcessorKind = "remux"
)

// PostProcessor is one declarative post-processing step
type PostProcessor struct {
	Kind        PostProcessorKind
	Codec       string // ExtractAudio: target codec
	BitrateKbps int    // ExtractAudio: target bitrate
	Container   string // Remux: target container
}

// JobOptions is the declarative description of one download job.
// It is derived from a DownloadRequest and the resolved transcoder path.
type JobOptions struct {
	SourceURL          string
	OutputTemplate     string
	Selector           string
	MergeFormat        string
	PostProcessors     []PostProcessor
	TranscoderLocation string
}

// HasPostProcessor reports whether a step of the given kind is configured
func (o JobOptions) HasPostProcessor(kind PostProcessorKind) bool {
	for _, pp := range o.PostProcessors {
		if pp.Kind == kind {
			return true
		}
	}
	return false
}
