package dex

import (
	"fmt"
	"strings"
)

// TeamSize is the number of members in every drafted team.
const TeamSize = 6

// pairSeparator joins the two labels of a TypePair in its string form.
const pairSeparator = "-"

// TypePair is the canonical, order-independent combination of an entity's
// two type labels. First always sorts before Second.
type TypePair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// NewTypePair builds a canonical TypePair from two labels in any order.
// Returns an error if either label is empty or both labels are equal.
func NewTypePair(a, b string) (TypePair, error) {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)

	if a == "" || b == "" {
		return TypePair{}, fmt.Errorf("type labels cannot be empty (got %q, %q)", a, b)
	}
	if a == b {
		return TypePair{}, fmt.Errorf("type labels must be distinct (got %q twice)", a)
	}
	if b < a {
		a, b = b, a
	}
	return TypePair{First: a, Second: b}, nil
}

// ParseTypePair parses the "First-Second" form produced by String.
func ParseTypePair(s string) (TypePair, error) {
	parts := strings.Split(s, pairSeparator)
	if len(parts) != 2 {
		return TypePair{}, fmt.Errorf("invalid type pair %q (expected form Type-Type)", s)
	}
	return NewTypePair(parts[0], parts[1])
}

// String returns the pair as "First-Second".
func (p TypePair) String() string {
	return p.First + pairSeparator + p.Second
}

// Labels returns both labels in canonical order.
func (p TypePair) Labels() [2]string {
	return [2]string{p.First, p.Second}
}

// Has reports whether label is one of the pair's labels.
func (p TypePair) Has(label string) bool {
	return p.First == label || p.Second == label
}

// SharesType reports whether the two pairs have at least one label in common.
// A pair always shares its types with itself.
func (p TypePair) SharesType(other TypePair) bool {
	return p.Has(other.First) || p.Has(other.Second)
}

// IsValid reports whether the pair holds two distinct, canonically ordered labels.
func (p TypePair) IsValid() bool {
	return p.First != "" && p.Second != "" && p.First < p.Second
}

// Entity is a single catalog record.
type Entity struct {
	Number int      `json:"number"`         // Catalog identifier, shared by alternate forms
	Name   string   `json:"name"`           // Display name
	Form   string   `json:"form,omitempty"` // Variant label such as "Mega Charizard X", empty for the base form
	Types  TypePair `json:"types"`          // Canonical type pair
	Href   string   `json:"href"`           // Detail page path relative to the catalog site
	Image  string   `json:"image"`          // Image URL
}

// DisplayName returns the name with the form label appended when present.
func (e Entity) DisplayName() string {
	if e.Form == "" || e.Form == e.Name {
		return e.Name
	}
	return fmt.Sprintf("%s (%s)", e.Name, e.Form)
}

// Validate checks the entity can take part in drafting.
func (e Entity) Validate() error {
	if e.Number <= 0 {
		return fmt.Errorf("entity %q: number must be positive, got %d", e.Name, e.Number)
	}
	if e.Name == "" {
		return fmt.Errorf("entity #%d: name is required", e.Number)
	}
	if !e.Types.IsValid() {
		return fmt.Errorf("entity %q: invalid type pair %q", e.Name, e.Types)
	}
	return nil
}

// Team is an ordered set of drafted entities.
type Team struct {
	Members []Entity `json:"members"`
}

// Numbers returns the catalog numbers of the members in team order.
func (t Team) Numbers() []int {
	numbers := make([]int, len(t.Members))
	for i, m := range t.Members {
		numbers[i] = m.Number
	}
	return numbers
}

// Pairs returns the type pairs of the members in team order.
func (t Team) Pairs() []TypePair {
	pairs := make([]TypePair, len(t.Members))
	for i, m := range t.Members {
		pairs[i] = m.Types
	}
	return pairs
}

// Validate checks the structural team invariants: size, member validity,
// distinct numbers and pairwise type-disjoint pairs. Evolution relations
// are not checked.
func (t Team) Validate() error {
	if len(t.Members) != TeamSize {
		return fmt.Errorf("team must have %d members, got %d", TeamSize, len(t.Members))
	}

	seenNumbers := make(map[int]string, TeamSize)
	seenLabels := make(map[string]string, TeamSize*2)

	for _, m := range t.Members {
		if err := m.Validate(); err != nil {
			return err
		}

		if other, exists := seenNumbers[m.Number]; exists {
			return fmt.Errorf("duplicate number #%d (%s and %s)", m.Number, other, m.Name)
		}
		seenNumbers[m.Number] = m.Name

		for _, label := range m.Types.Labels() {
			if other, exists := seenLabels[label]; exists {
				return fmt.Errorf("type %s used by both %s and %s", label, other, m.Name)
			}
			seenLabels[label] = m.Name
		}
	}

	return nil
}
