package models

// WriteOutcome classifies what is known about a store write.
type WriteOutcome int

const (
	// WriteSuccess means the store confirmed the write.
	WriteSuccess WriteOutcome = iota
	// WriteUnknown means the request was delivered but its outcome could not be
	// observed. Callers treat it as an optimistic acknowledgment.
	WriteUnknown
	// WriteFailure means the store rejected the write or it never arrived.
	WriteFailure
)

func (o WriteOutcome) String() string {
	switch o {
	case WriteSuccess:
		return "success"
	case WriteUnknown:
		return "unknown"
	case WriteFailure:
		return "failure"
	default:
		return "invalid"
	}
}

// WriteResult is the outcome of Create, Update or Delete. Recipe is set when
// the store knows the resulting record.
type WriteResult struct {
	Outcome WriteOutcome
	Message string
	Recipe  *Recipe
}

// Succeeded returns a confirmed result.
func Succeeded(r *Recipe) WriteResult {
	return WriteResult{Outcome: WriteSuccess, Recipe: r}
}

// Unconfirmed returns an optimistic result.
func Unconfirmed(msg string) WriteResult {
	return WriteResult{Outcome: WriteUnknown, Message: msg}
}

// Failed returns a failure with a human-readable message.
func Failed(msg string) WriteResult {
	return WriteResult{Outcome: WriteFailure, Message: msg}
}

// Accepted reports whether callers proceed as if the write happened.
func (w WriteResult) Accepted() bool {
	return w.Outcome == WriteSuccess || w.Outcome == WriteUnknown
}
