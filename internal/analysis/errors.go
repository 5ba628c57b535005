package analysis

// ErrorKind distinguishes the terminal failure classes of a batch request.
type ErrorKind int

const (
	// KindDecode - uploaded file bytes were not valid UTF-8.
	KindDecode ErrorKind = iota
	// KindFetch - target URL unreachable, timed out, or returned a bad status.
	KindFetch
	// KindEmptyContent - page fetched fine but no paragraph passed the filter.
	KindEmptyContent
	// KindClassifier - the inference call itself failed.
	KindClassifier
)

// Error carries a failure kind plus the exact message callers receive.
// Every failure class is surfaced as a structured payload, never as a
// transport-level error.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
