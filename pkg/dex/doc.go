// Package dex provides the shared data model for dexteam: catalog entities,
// canonical type-pair keys and drafted teams.
//
// # Overview
//
// Every entity that reaches the drafting core carries exactly two distinct
// elemental types. The pair is stored canonically as a TypePair whose labels
// are sorted, so "Flying/Fire" and "Fire/Flying" are the same key. Entities
// are grouped by that key and a Team is assembled from six keys that share
// no label with each other.
//
// # Invariants
//
// A valid Team has exactly TeamSize members, no two members share a catalog
// number, and no type label appears in more than one member's pair. The
// evolution constraint is not checked here because it needs external data;
// see the draft package for the full acceptance rule.
//
// # Usage Example
//
//	pair, err := dex.NewTypePair("Flying", "Fire")
//	if err != nil {
//		return err
//	}
//	fmt.Println(pair) // Fire-Flying
//
//	e := dex.Entity{Number: 6, Name: "Charizard", Types: pair, Href: "/pokedex/charizard"}
//	if err := e.Validate(); err != nil {
//		return err
//	}
package dex
