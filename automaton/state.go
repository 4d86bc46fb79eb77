package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// StateID identifies a state within one automaton. IDs are dense and start at 0.
type StateID int

func (id StateID) String() string {
	return fmt.Sprintf("%v", int(id))
}

// State is an immutable state record. Identity is by ID only.
type State struct {
	ID      StateID
	Label   string
	IsStart bool
	IsFinal bool
}

func stateIDComparator(a, b interface{}) int {
	x := a.(StateID)
	y := b.(StateID)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// StateSet is a canonical set of state IDs. Two sets with the same members are equal and have the
// same key, whatever order the members were added in.
type StateSet struct {
	ids []StateID
}

func NewStateSet(ids ...StateID) StateSet {
	if len(ids) == 0 {
		return StateSet{}
	}
	set := treeset.NewWith(stateIDComparator)
	for _, id := range ids {
		set.Add(id)
	}
	return stateSetFromTree(set)
}

func stateSetFromTree(set *treeset.Set) StateSet {
	vs := set.Values()
	ids := make([]StateID, len(vs))
	for i, v := range vs {
		ids[i] = v.(StateID)
	}
	return StateSet{
		ids: ids,
	}
}

func (s StateSet) Len() int {
	return len(s.ids)
}

func (s StateSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the members in ascending order.
func (s StateSet) IDs() []StateID {
	ids := make([]StateID, len(s.ids))
	copy(ids, s.ids)
	return ids
}

func (s StateSet) Contains(id StateID) bool {
	i := sort.Search(len(s.ids), func(i int) bool {
		return s.ids[i] >= id
	})
	return i < len(s.ids) && s.ids[i] == id
}

func (s StateSet) Intersects(t StateSet) bool {
	i, j := 0, 0
	for i < len(s.ids) && j < len(t.ids) {
		switch {
		case s.ids[i] == t.ids[j]:
			return true
		case s.ids[i] < t.ids[j]:
			i++
		default:
			j++
		}
	}
	return false
}

func (s StateSet) Union(t StateSet) StateSet {
	return NewStateSet(append(s.IDs(), t.ids...)...)
}

func (s StateSet) Equal(t StateSet) bool {
	if len(s.ids) != len(t.ids) {
		return false
	}
	for i, id := range s.ids {
		if t.ids[i] != id {
			return false
		}
	}
	return true
}

// Key returns a string usable as a map key. Equal sets have equal keys.
func (s StateSet) Key() string {
	var b strings.Builder
	for i, id := range s.ids {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%v", int(id))
	}
	return b.String()
}

func (s StateSet) String() string {
	return "{" + s.Key() + "}"
}
