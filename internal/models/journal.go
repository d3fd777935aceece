package models

import (
	"strings"
	"time"

	"github.com/Mohameddacar/xasuusqor/internal/errors"
)

// Journal is a named collection that entries are tagged with.
type Journal struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Color       string      `json:"color,omitempty"` // hex string, not validated
	Icon        JournalIcon `json:"icon,omitempty"`
	IsDefault   bool        `json:"is_default"`
	CreatedDate time.Time   `json:"created_date"`
}

// Validate checks field invariants before persistence.
func (j *Journal) Validate() error {
	if strings.TrimSpace(j.Name) == "" {
		return errors.New(errors.ErrValidation, "journal name is required")
	}
	if j.Icon != "" && !j.Icon.Valid() {
		return errors.Newf(errors.ErrValidation, "unknown journal icon %q", j.Icon)
	}
	return nil
}

// UnknownJournalName labels entries whose journal_id no longer resolves.
// Deleting a journal does not cascade; its entries keep the dangling
// reference and consumers fall back to this label.
const UnknownJournalName = "Unknown journal"

// JournalIndex resolves journal ids to journals for read-time lookups.
type JournalIndex map[string]*Journal

// NewJournalIndex builds an index over the given journals.
func NewJournalIndex(journals []*Journal) JournalIndex {
	idx := make(JournalIndex, len(journals))
	for _, j := range journals {
		idx[j.ID] = j
	}
	return idx
}

// NameOf returns the journal's display name, or UnknownJournalName for a
// dangling or empty reference.
func (idx JournalIndex) NameOf(journalID string) string {
	if j, ok := idx[journalID]; ok {
		return j.Name
	}
	return UnknownJournalName
}

// Default returns the default journal, or the first one when none is
// flagged, or nil when there are no journals at all.
func (idx JournalIndex) Default(journals []*Journal) *Journal {
	for _, j := range journals {
		if j.IsDefault {
			return j
		}
	}
	if len(journals) > 0 {
		return journals[0]
	}
	return nil
}
