package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/dexteam/internal/draft"
	"github.com/dyluth/dexteam/pkg/dex"
)

// FormatTable writes the team as a formatted table to the provided writer.
// The table includes columns: #, NAME, FORM, and TYPES.
func FormatTable(w io.Writer, team dex.Team) {
	fmt.Fprintf(w, "%-5s %-16s %-24s %s\n", "#", "NAME", "FORM", "TYPES")
	fmt.Fprintf(w, "%-5s %-16s %-24s %s\n",
		"-----", "----------------", "------------------------", "------------------")

	for _, m := range team.Members {
		fmt.Fprintf(w, "%-5s %-16s %-24s %s\n",
			fmt.Sprintf("%03d", m.Number),
			truncate(m.Name, 16),
			truncate(formOf(m), 24),
			m.Types.First+" / "+m.Types.Second,
		)
	}
}

// FormatCatalog writes one row per type pair with its entity count, limited
// to pairs containing label when label is non-empty.
// Returns the number of pairs formatted.
func FormatCatalog(w io.Writer, catalog *draft.Catalog, label string) int {
	keys := catalogKeys(catalog, label)
	if len(keys) == 0 {
		if label != "" {
			fmt.Fprintf(w, "No type pairs found containing '%s'\n", label)
		} else {
			fmt.Fprintln(w, "No type pairs found")
		}
		return 0
	}

	fmt.Fprintf(w, "%-22s %-7s %s\n", "PAIR", "COUNT", "EXAMPLES")
	fmt.Fprintf(w, "%-22s %-7s %s\n",
		"----------------------", "-------", "----------------------------------------")

	for _, key := range keys {
		bucket := catalog.Bucket(key)
		fmt.Fprintf(w, "%-22s %-7d %s\n", key.String(), len(bucket), examples(bucket, 40))
	}

	countMsg := "type pair"
	if len(keys) != 1 {
		countMsg = "type pairs"
	}
	fmt.Fprintf(w, "\n%d %s, %d entities, %d labels\n", len(keys), countMsg, catalog.Size(), len(catalog.Labels()))

	return len(keys)
}

// bucketLine is one JSONL record of the catalog.
type bucketLine struct {
	Pair     string       `json:"pair"`
	Types    dex.TypePair `json:"types"`
	Count    int          `json:"count"`
	Entities []dex.Entity `json:"entities"`
}

// FormatJSONL writes catalog buckets as line-delimited JSON (JSONL), one
// bucket per line, limited to pairs containing label when non-empty.
func FormatJSONL(w io.Writer, catalog *draft.Catalog, label string) error {
	for _, key := range catalogKeys(catalog, label) {
		bucket := catalog.Bucket(key)
		data, err := json.Marshal(bucketLine{
			Pair:     key.String(),
			Types:    key,
			Count:    len(bucket),
			Entities: bucket,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal bucket %s to JSON: %w", key, err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// catalogKeys returns the pairs to print. Labels match case-insensitively.
func catalogKeys(catalog *draft.Catalog, label string) []dex.TypePair {
	if label == "" {
		return catalog.Keys()
	}
	for _, known := range catalog.Labels() {
		if strings.EqualFold(known, label) {
			return catalog.WithType(known)
		}
	}
	return nil
}

func formOf(e dex.Entity) string {
	if e.Form == e.Name {
		return ""
	}
	return e.Form
}

// examples lists bucket names until width is reached.
func examples(bucket []dex.Entity, width int) string {
	var b strings.Builder
	for i, e := range bucket {
		name := e.DisplayName()
		if i > 0 {
			name = ", " + name
		}
		if b.Len()+len(name) > width {
			if i > 0 {
				b.WriteString(", ...")
			} else {
				b.WriteString(truncate(name, width))
			}
			break
		}
		b.WriteString(name)
	}
	return b.String()
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
