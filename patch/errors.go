package patch

import "fmt"

// ResolveError is a fatal value-resolution failure: the document or the
// prefetched property metadata is internally inconsistent and no safe
// partial result exists.
type ResolveError struct {
	Term   string
	Reason string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve %s: %s", e.Term, e.Reason)
}

func resolveErrorf(term fmt.Stringer, format string, args ...any) error {
	return &ResolveError{Term: term.String(), Reason: fmt.Sprintf(format, args...)}
}

// StatementNotFoundError reports a statement subject whose GUID does not
// exist on the prefetched entity.
type StatementNotFoundError struct {
	GUID string
}

func (e *StatementNotFoundError) Error() string {
	return fmt.Sprintf("statement GUID not found: %s", e.GUID)
}
