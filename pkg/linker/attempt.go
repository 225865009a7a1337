package linker

// Attempt tracks whether the accelerated operation works for the package
// currently being extracted. It only moves forward and is reset for every
// package, even on the same destination.
type Attempt int

const (
	// Initial means the operation has not been tried yet.
	Initial Attempt = iota
	// Subsequent means the operation worked at least once.
	Subsequent
	// UseCopyFallback means the operation failed; copy everything else.
	UseCopyFallback
)

func (a Attempt) String() string {
	switch a {
	case Initial:
		return "initial"
	case Subsequent:
		return "subsequent"
	case UseCopyFallback:
		return "use-copy-fallback"
	default:
		return "unknown"
	}
}

type outcome int

const (
	succeeded outcome = iota
	failed
)

// transitions is the complete Attempt state machine. A missing entry means
// the outcome is fatal in that state.
var transitions = map[Attempt]map[outcome]Attempt{
	Initial:         {succeeded: Subsequent, failed: UseCopyFallback},
	Subsequent:      {succeeded: Subsequent},
	UseCopyFallback: {succeeded: UseCopyFallback, failed: UseCopyFallback},
}

// next returns the state after an outcome, and false if the outcome cannot be
// absorbed by falling back.
func (a Attempt) next(o outcome) (Attempt, bool) {
	to, ok := transitions[a][o]
	if !ok {
		return a, false
	}
	return to, true
}
