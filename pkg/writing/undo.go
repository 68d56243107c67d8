package writing

import "github.com/aretw0/lumina/pkg/domain"

// Undo holds one snapshot per mutation direction. The two directions share
// no history: capturing one forgets the other.
type Undo struct {
	expand   *string
	contract *string
}

func (u *Undo) slot(kind domain.WritingType) **string {
	if kind == domain.WritingContract {
		return &u.contract
	}
	return &u.expand
}

func (u *Undo) other(kind domain.WritingType) **string {
	if kind == domain.WritingContract {
		return &u.expand
	}
	return &u.contract
}

// Capture stores content in slot kind and clears the opposite slot.
func (u *Undo) Capture(kind domain.WritingType, content string) {
	*u.slot(kind) = &content
	*u.other(kind) = nil
}

// Peek returns the snapshot of slot kind without consuming it.
func (u *Undo) Peek(kind domain.WritingType) (string, bool) {
	p := *u.slot(kind)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Take returns and clears the snapshot of slot kind. ok is false when the
// slot was never set or was already consumed.
func (u *Undo) Take(kind domain.WritingType) (string, bool) {
	s, ok := u.Peek(kind)
	*u.slot(kind) = nil
	return s, ok
}

// Available reports whether slot kind holds a snapshot.
func (u *Undo) Available(kind domain.WritingType) bool {
	return *u.slot(kind) != nil
}

// Clear empties both slots.
func (u *Undo) Clear() {
	u.expand = nil
	u.contract = nil
}
