package cache

import "fmt"

// Redis key pattern helpers
//
// All keys are namespaced so several catalogs (or test runs) can share one
// Redis server.
//
// Key pattern: dexteam:{namespace}:{entity}[:{number}]

// CatalogKey returns the key holding the JSON-encoded dual-typed catalog.
// Pattern: dexteam:{namespace}:catalog
func CatalogKey(namespace string) string {
	return fmt.Sprintf("dexteam:%s:catalog", namespace)
}

// RelatedKey returns the key of the set of numbers related to an entity.
// Pattern: dexteam:{namespace}:related:{number}
func RelatedKey(namespace string, number int) string {
	return fmt.Sprintf("dexteam:%s:related:%d", namespace, number)
}

// NamespacePattern matches every key of a namespace.
// Pattern: dexteam:{namespace}:*
func NamespacePattern(namespace string) string {
	return fmt.Sprintf("dexteam:%s:*", namespace)
}
