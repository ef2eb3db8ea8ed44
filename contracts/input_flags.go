package contracts

// DefaultJPEGQuality is the quality used for page re-encoding when the
// user does not override it.
const DefaultJPEGQuality = 75

// InputFlags carries the run parameters shared by every directory in a
// batch. SourceDPI and Divisor are zero until the prompt (or flag) has
// supplied a strictly positive value.
type InputFlags struct {
	Dirs        []string
	JpegQuality int
	SourceDPI   float64
	Divisor     float64
	Optimize    bool
	Verbose     bool
	LogFile     string
}
