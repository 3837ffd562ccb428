package model

// ActionKind identifies the variant of a history action.
type ActionKind uint8

const (
	// ActionMark is a boundary sentinel between consecutive edits.
	ActionMark ActionKind = iota
	// ActionInsert records a record appended to the collection tail.
	ActionInsert
	// ActionRemove records a record popped from the collection tail.
	ActionRemove
)

// String returns the string representation of the kind.
func (k ActionKind) String() string {
	switch k {
	case ActionMark:
		return "mark"
	case ActionInsert:
		return "insert"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Action is a single entry of the history log.
// Record is nil for marks and set for inserts and removes.
type Action struct {
	Kind   ActionKind
	Record *Record
}

// MarkAction returns a boundary mark.
func MarkAction() Action {
	return Action{Kind: ActionMark}
}

// InsertAction returns an insert edit holding a copy of r.
func InsertAction(r Record) Action {
	return Action{Kind: ActionInsert, Record: &r}
}

// RemoveAction returns a remove edit holding a copy of r.
func RemoveAction(r Record) Action {
	return Action{Kind: ActionRemove, Record: &r}
}

// IsMark returns true for boundary marks.
func (a Action) IsMark() bool {
	return a.Kind == ActionMark
}

// IsEdit returns true for insert and remove actions.
func (a Action) IsEdit() bool {
	return a.Kind == ActionInsert || a.Kind == ActionRemove
}

// Clone returns a deep copy so callers cannot mutate the stored payload.
func (a Action) Clone() Action {
	if a.Record == nil {
		return Action{Kind: a.Kind}
	}
	r := *a.Record
	return Action{Kind: a.Kind, Record: &r}
}
