package output

// StdinName is how results read from standard input are labelled.
const StdinName = "(standard input)"

// Result is the outcome of checking one input.
type Result struct {
	// Path is empty for standard input.
	Path  string
	// Seq orders results for output; the first input is 1.
	Seq   int
	// Size is the input size in bytes, or -1 when it was never known.
	Size  int64
	// Index is the absolute offset of the first non-ASCII byte, or -1.
	Index int64
	Err   error
}

// ASCII reports whether the input was read completely and held only ASCII.
func (r *Result) ASCII() bool {
	return r.Err == nil && r.Index < 0
}

// Name returns the path shown to the user.
func (r *Result) Name() string {
	if r.Path == "" {
		return StdinName
	}
	return r.Path
}
