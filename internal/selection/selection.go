// Package selection tracks which timeline items are selected for bulk
// operations. One rule applies on every track surface: a plain click replaces
// the selection, a modified click (shift or ctrl) toggles membership.
package selection

import "sort"

// Set holds the ids of the currently selected items. Not safe for concurrent
// use; the editor serializes access.
type Set struct {
	ids map[string]bool
}

func NewSet() *Set {
	return &Set{ids: make(map[string]bool)}
}

// Click replaces the selection with the single clicked item.
func (s *Set) Click(id string) {
	s.ids = map[string]bool{id: true}
}

// ModClick toggles the clicked item's membership, leaving the rest of the
// selection intact.
func (s *Set) ModClick(id string) {
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

// Clear empties the selection.
func (s *Set) Clear() {
	s.ids = make(map[string]bool)
}

// Remove drops an id, e.g. when the underlying item is deleted.
func (s *Set) Remove(id string) {
	delete(s.ids, id)
}

// Contains reports whether the item is selected.
func (s *Set) Contains(id string) bool {
	return s.ids[id]
}

// Len returns the selection size.
func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order for stable iteration.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
