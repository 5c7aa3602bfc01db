package render

import "fmt"

// Entry is one row of the presence list.
type Entry struct {
	Nickname string
	Self     bool // the current user's own entry is distinguished
}

// Presence renders the set of connected participants. Every update
// replaces the whole list; there is no diffing.
type Presence struct {
	currentUser string
	entries     []Entry

	// OnUpdate, when set, observes every replacement.
	OnUpdate func([]Entry)
}

// NewPresence creates a presence view for the given local user.
func NewPresence(currentUser string) *Presence {
	return &Presence{currentUser: currentUser}
}

// Update replaces the rendered list with the given nicknames, in order.
func (p *Presence) Update(users []string) {
	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		entries = append(entries, Entry{Nickname: u, Self: u == p.currentUser})
	}
	p.entries = entries
	if p.OnUpdate != nil {
		p.OnUpdate(entries)
	}
}

// Entries returns the current rendered list.
func (p *Presence) Entries() []Entry { return p.entries }

// Count returns the number of participants shown.
func (p *Presence) Count() int { return len(p.entries) }

// CountLabel returns the count the way the header shows it, e.g. "(2)".
func (p *Presence) CountLabel() string { return fmt.Sprintf("(%d)", len(p.entries)) }
