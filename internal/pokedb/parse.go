package pokedb

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dyluth/dexteam/pkg/dex"
	"golang.org/x/net/html"
)

// ParseCatalog reads the national catalog listing and returns every
// dual-typed entry in page order, along with the number of rows skipped
// because they do not carry exactly two types.
//
// Rows are located by class rather than cell position:
//
//	table#pokedex > tbody > tr
//	  .infocard-cell-data     catalog number
//	  img.img-fixed           image (data-src, falling back to src)
//	  a.ent-name              detail page and name
//	  small.text-muted        form label, optional
//	  a.type-icon             one per type
func ParseCatalog(r io.Reader) ([]dex.Entity, int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse catalog HTML: %w", err)
	}

	table := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "table") && attr(n, "id") == "pokedex"
	})
	if table == nil {
		return nil, 0, fmt.Errorf("catalog table #pokedex not found")
	}

	body := findFirst(table, func(n *html.Node) bool { return isElement(n, "tbody") })
	if body == nil {
		return nil, 0, fmt.Errorf("catalog table has no body")
	}

	var entities []dex.Entity
	skipped := 0
	for i, row := range children(body, "tr") {
		e, types, err := parseRow(row)
		if err != nil {
			return nil, 0, fmt.Errorf("catalog row %d: %w", i+1, err)
		}
		if len(types) != 2 {
			skipped++
			continue
		}

		e.Types, err = dex.NewTypePair(types[0], types[1])
		if err != nil {
			return nil, 0, fmt.Errorf("catalog row %d (%s): %w", i+1, e.Name, err)
		}
		entities = append(entities, e)
	}

	return entities, skipped, nil
}

// parseRow extracts one entry and its raw type labels.
func parseRow(row *html.Node) (dex.Entity, []string, error) {
	var e dex.Entity

	numberNode := findFirst(row, hasClassPredicate("infocard-cell-data"))
	if numberNode == nil {
		return e, nil, fmt.Errorf("missing catalog number")
	}
	numberText := strings.TrimSpace(textContent(numberNode))
	number, err := strconv.Atoi(numberText)
	if err != nil || number <= 0 {
		return e, nil, fmt.Errorf("invalid catalog number %q", numberText)
	}
	e.Number = number

	nameNode := findFirst(row, func(n *html.Node) bool {
		return isElement(n, "a") && hasClass(n, "ent-name")
	})
	if nameNode == nil {
		return e, nil, fmt.Errorf("missing name for #%d", number)
	}
	e.Name = strings.TrimSpace(textContent(nameNode))
	e.Href = attr(nameNode, "href")

	if form := findFirst(row, func(n *html.Node) bool {
		return isElement(n, "small") && hasClass(n, "text-muted")
	}); form != nil {
		e.Form = strings.TrimSpace(textContent(form))
	}

	if img := findFirst(row, func(n *html.Node) bool {
		return isElement(n, "img") && hasClass(n, "img-fixed")
	}); img != nil {
		e.Image = attr(img, "data-src")
		if e.Image == "" {
			e.Image = attr(img, "src")
		}
	}

	var types []string
	for _, n := range findAll(row, hasClassPredicate("type-icon")) {
		if label := strings.TrimSpace(textContent(n)); label != "" {
			types = append(types, label)
		}
	}

	return e, types, nil
}

// ParseEvolutions reads a detail page and returns the catalog numbers shown
// in any of its evolution chains, excluding self. A page without an
// evolution chain yields an empty set.
func ParseEvolutions(r io.Reader, self int) (map[int]struct{}, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail page HTML: %w", err)
	}

	related := make(map[int]struct{})
	for _, list := range findAll(doc, hasClassPredicate("infocard-list-evo")) {
		for _, card := range findAll(list, hasClassPredicate("infocard-lg-data")) {
			number, ok := cardNumber(card)
			if !ok || number == self {
				continue
			}
			related[number] = struct{}{}
		}
	}

	return related, nil
}

// cardNumber reads the "#0001" label of an evolution card.
func cardNumber(card *html.Node) (int, bool) {
	for _, small := range findAll(card, func(n *html.Node) bool { return isElement(n, "small") }) {
		text := strings.TrimSpace(textContent(small))
		if !strings.HasPrefix(text, "#") {
			continue
		}
		number, err := strconv.Atoi(strings.TrimPrefix(text, "#"))
		if err != nil || number <= 0 {
			return 0, false
		}
		return number, true
	}
	return 0, false
}
