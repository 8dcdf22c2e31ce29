package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPatterns(t *testing.T) {
	assert.Equal(t, "dexteam:default:catalog", CatalogKey("default"))
	assert.Equal(t, "dexteam:default:related:133", RelatedKey("default", 133))
	assert.Equal(t, "dexteam:test:*", NamespacePattern("test"))
}
