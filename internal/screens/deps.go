// Package screens holds the dependency container shared by the
// individual screen packages beneath it.
package screens

import (
	"github.com/abhisek/prepdeck/internal/bank"
	"github.com/abhisek/prepdeck/internal/progress"
)

// Deps carries the loaded banks and persistence handles every screen
// needs. A single value is shared across the screen stack so switching
// the active collection is visible everywhere.
type Deps struct {
	Banks      map[string]*bank.Bank
	Collection string // active collection ID
	Attempts   progress.AttemptRepo
	Bookmarks  progress.BookmarkRepo
}

// Bank returns the active collection's bank.
func (d *Deps) Bank() *bank.Bank {
	return d.Banks[d.Collection]
}

// CollectionTitle returns the display title of the active collection.
func (d *Deps) CollectionTitle() string {
	for _, c := range bank.Collections() {
		if c.ID == d.Collection {
			return c.Title
		}
	}
	return d.Collection
}

// NextCollection returns the collection ID after the active one,
// wrapping around. With a single bundled collection it returns the
// active ID itself.
func (d *Deps) NextCollection() string {
	cols := bank.Collections()
	for i, c := range cols {
		if c.ID == d.Collection {
			return cols[(i+1)%len(cols)].ID
		}
	}
	return d.Collection
}
