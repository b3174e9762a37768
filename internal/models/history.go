package models

import (
	"errors"
	"slices"
)

var (
	ErrSelfExclusion      = errors.New("a participant cannot be excluded from themselves")
	ErrDuplicateExclusion = errors.New("this pairing already exists")
	ErrEmptyName          = errors.New("giver and receiver are required")
)

// History is the forbidden-pair registry: giver → receivers that giver must
// not draw this round. Each key owns its slice; a giver never maps to itself
// and keys with no receivers are removed.
type History map[string][]string

// Add forbids giver → receiver.
func (h History) Add(giver, receiver string) error {
	if giver == "" || receiver == "" {
		return ErrEmptyName
	}
	if giver == receiver {
		return ErrSelfExclusion
	}
	if h.Forbids(giver, receiver) {
		return ErrDuplicateExclusion
	}
	h[giver] = append(h[giver], receiver)
	return nil
}

// Remove lifts the giver → receiver exclusion if present.
func (h History) Remove(giver, receiver string) {
	receivers, ok := h[giver]
	if !ok {
		return
	}
	receivers = slices.DeleteFunc(receivers, func(r string) bool { return r == receiver })
	if len(receivers) == 0 {
		delete(h, giver)
		return
	}
	h[giver] = receivers
}

// Prune removes every exclusion mentioning name, as giver or receiver.
func (h History) Prune(name string) {
	delete(h, name)
	for giver := range h {
		h.Remove(giver, name)
	}
}

// Forbids reports whether giver must not be assigned receiver.
func (h History) Forbids(giver, receiver string) bool {
	return slices.Contains(h[giver], receiver)
}

// Len returns the number of forbidden pairs.
func (h History) Len() int {
	n := 0
	for _, receivers := range h {
		n += len(receivers)
	}
	return n
}

// Clone returns a deep copy with no slices shared with h.
func (h History) Clone() History {
	out := make(History, len(h))
	for giver, receivers := range h {
		out[giver] = slices.Clone(receivers)
	}
	return out
}
