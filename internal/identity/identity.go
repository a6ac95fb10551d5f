// Package identity canonicalizes player display names. Scraped placement
// data spells the same person many ways; the resolver folds every known
// alias onto one stable canonical ID so a player is never double-counted
// under two spellings.
package identity

import (
	"strings"

	"github.com/vesa-league/vesarank/internal/model"
)

// Normalize folds a display name for identity comparison: trim plus
// case-fold. Every lookup and every map key in the pipeline goes through
// this, so two spellings that normalize equal always collapse.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolver maps display names to canonical IDs over a fixed alias table.
// Pure lookup: resolving never mutates the table.
type Resolver struct {
	aliasToCanonical map[string]string
	conflicts        []model.AliasConflict
}

// NewResolver builds a resolver from alias entries. If the same alias is
// claimed by two canonical identities, the first-seen owner wins and the
// conflict is recorded for the audit report.
func NewResolver(entries []model.AliasEntry) *Resolver {
	r := &Resolver{
		aliasToCanonical: make(map[string]string),
	}
	for _, e := range entries {
		canonical := Normalize(e.DiscordName)
		if canonical == "" {
			continue
		}
		for _, alias := range e.Aliases {
			a := Normalize(alias)
			if a == "" {
				continue
			}
			if owner, seen := r.aliasToCanonical[a]; seen {
				if owner != canonical {
					r.conflicts = append(r.conflicts, model.AliasConflict{
						Alias:     a,
						Kept:      owner,
						Discarded: canonical,
					})
				}
				continue
			}
			r.aliasToCanonical[a] = canonical
		}
	}
	return r
}

// Resolve returns the canonical ID for a display name. Unknown names become
// their own (normalized) canonical ID — scrapers cannot guarantee alias
// completeness, so an unknown name is a singleton identity, not an error.
func (r *Resolver) Resolve(displayName string) string {
	n := Normalize(displayName)
	if canonical, ok := r.aliasToCanonical[n]; ok {
		return canonical
	}
	return n
}

// Conflicts returns the alias conflicts encountered while building the
// table, in first-seen order.
func (r *Resolver) Conflicts() []model.AliasConflict {
	return r.conflicts
}
