package history

import "fmt"

// InvariantError describes a broken cursor or log invariant.
// It is raised with panic: no caller can recover a log in this state.
type InvariantError struct {
	Op      string
	Index   int
	Len     int
	Current int
	Max     int
	Reason  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("history: %s: %s (index=%d len=%d current=%d max=%d)",
		e.Op, e.Reason, e.Index, e.Len, e.Current, e.Max)
}

func (l *Log) fault(op string, index int, reason string) *InvariantError {
	return &InvariantError{
		Op:      op,
		Index:   index,
		Len:     len(l.actions),
		Current: l.current,
		Max:     l.max,
		Reason:  reason,
	}
}
