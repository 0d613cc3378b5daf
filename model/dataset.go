package model

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/puyokura/zethon/icons"
)

// ErrInvalidDataset is wrapped by every dataset validation failure.
var ErrInvalidDataset = errors.New("invalid dataset")

// Dataset is the read-only sample data every view renders from.
type Dataset struct {
	CurrentUser User
	Users       []User
	Categories  []Category
	Threads     []Thread
	Posts       []Post
	Messages    []PrivateMessage
	Shouts      []ShoutboxMessage
}

// Validate checks the references between entities. Icon identifiers missing
// from the registry are not errors; they are returned as warnings and render
// with the fallback glyph.
func (d *Dataset) Validate() (warnings []string, err error) {
	categories := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		categories[c.ID] = true
		if !icons.Known(c.Icon) {
			warnings = append(warnings, fmt.Sprintf("category %s: unknown icon %q", c.ID, c.Icon))
		}
	}

	users := append([]User{d.CurrentUser}, d.Users...)
	for _, u := range users {
		if !u.Rank.Valid() {
			return warnings, fmt.Errorf("user %s: rank %q: %w", u.ID, u.Rank, ErrInvalidDataset)
		}
		for _, b := range u.Badges {
			if !icons.Known(b.Icon) {
				warnings = append(warnings, fmt.Sprintf("user %s badge %s: unknown icon %q", u.ID, b.ID, b.Icon))
			}
		}
	}

	threads := make(map[string]bool, len(d.Threads))
	for _, t := range d.Threads {
		if !categories[t.CategoryID] {
			return warnings, fmt.Errorf("thread %s: category %q not found: %w", t.ID, t.CategoryID, ErrInvalidDataset)
		}
		threads[t.ID] = true
	}

	for _, p := range d.Posts {
		if !threads[p.ThreadID] {
			return warnings, fmt.Errorf("post %s: thread %q not found: %w", p.ID, p.ThreadID, ErrInvalidDataset)
		}
	}

	for _, s := range d.Shouts {
		if utf8.RuneCountInString(s.Message) > MaxShoutLength {
			return warnings, fmt.Errorf("shout %s: longer than %d characters: %w", s.ID, MaxShoutLength, ErrInvalidDataset)
		}
	}

	return warnings, nil
}
