package convert

// Markers shared by the encoder and decoder
const (
	EmptyArrayMarker  = "_empty array_"
	EmptyObjectMarker = "_empty object_"
	ObjectCellMarker  = "_object_"
	NullCellMarker    = "_null_"
	MaxDepthMarker    = "_max depth reached_"

	// FatalPrefix starts the single diagnostic reported when decoding aborts
	FatalPrefix = "fatal: "

	isoTimestamp = "2006-01-02T15:04:05.000Z07:00"
)

// Encoder defaults
const (
	DefaultHeadingLevel = 1
	DefaultIndentSize   = 2
	DefaultMaxDepth     = 10
)

// EncodeOptions configures JSONToMarkdown
type EncodeOptions struct {
	// HeadingLevel is reserved. It is clamped to 1..6 but does not change
	// the bullet-based output
	HeadingLevel     int
	IndentSize       int
	UseNumberedLists bool
	ArraysAsTables   bool
	MaxDepth         int
}

// DefaultEncodeOptions returns the encoder defaults
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		HeadingLevel: DefaultHeadingLevel,
		IndentSize:   DefaultIndentSize,
		MaxDepth:     DefaultMaxDepth,
	}
}

// resolve fills zero and out-of-range fields with defaults. A negative
// MaxDepth is kept as zero so only the root level renders
func (o *EncodeOptions) resolve() EncodeOptions {
	if o == nil {
		return DefaultEncodeOptions()
	}
	r := *o
	if r.HeadingLevel < 1 {
		r.HeadingLevel = DefaultHeadingLevel
	}
	if r.HeadingLevel > 6 {
		r.HeadingLevel = 6
	}
	if r.IndentSize <= 0 {
		r.IndentSize = DefaultIndentSize
	}
	if r.MaxDepth == 0 {
		r.MaxDepth = DefaultMaxDepth
	}
	if r.MaxDepth < 0 {
		r.MaxDepth = 0
	}
	return r
}

// DecodeOptions configures MarkdownToJSON
// Toggles that default to on are Disable* fields so the zero value is the default
type DecodeOptions struct {
	DisableNumberedLists bool
	DisableTables        bool
	CamelCaseKeys        bool
}

// DefaultDecodeOptions returns the decoder defaults
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{}
}

// ParseNumberedLists reports whether "N. item" lines are recognised
func (o DecodeOptions) ParseNumberedLists() bool {
	return !o.DisableNumberedLists
}

// ParseTables reports whether pipe tables are recognised
func (o DecodeOptions) ParseTables() bool {
	return !o.DisableTables
}

// Result holds the decoded value and any diagnostics
type Result struct {
	Value       any
	Diagnostics []string
}
