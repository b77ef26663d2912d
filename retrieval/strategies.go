package retrieval

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"sales-agent/catalog"
)

// Result-set caps, enforced per rule.
const (
	maxTubeResults      = 10
	maxCrossSellResults = 5
	maxGenericResults   = 15
	maxCategoryFallback = 5
	maxSummaryProducts  = 5
	maxStoreExcerptLen  = 500
)

// Strategy is one rung of the relevance cascade. Attempt returns nil when
// the strategy does not fire for the query; each strategy checks its own
// preconditions so the cascade order stays a plain, reorderable list.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, q Query, products []catalog.Product) []catalog.Product
}

// semanticStrategy queries the vector index. Generic browse messages skip
// it entirely: the catalog listing serves those better than a fuzzy match.
type semanticStrategy struct {
	index *ProductIndex
	topK  int
}

func (semanticStrategy) Name() string { return "semantic" }

func (s semanticStrategy) Attempt(ctx context.Context, q Query, products []catalog.Product) []catalog.Product {
	if q.Generic {
		return nil
	}
	return s.index.Search(ctx, q.Raw, q.Filters, s.topK)
}

// keywordStrategy is the legacy fallback used when semantic search yields
// nothing: title word overlap, verbatim name/model/type mention, or a
// complete-machine category. Complete machines always count as plausible
// so an ambiguous query errs toward showing inventory rather than nothing.
type keywordStrategy struct{}

func (keywordStrategy) Name() string { return "keyword" }

func (keywordStrategy) Attempt(ctx context.Context, q Query, products []catalog.Product) []catalog.Product {
	if q.Generic {
		return nil
	}
	words := meaningfulWords(q.Lower)
	var matched []catalog.Product
	for _, p := range products {
		if keywordMatch(q, words, p) {
			matched = append(matched, p)
		}
	}
	return matched
}

func keywordMatch(q Query, words []string, p catalog.Product) bool {
	title := foldText(p.Title())
	for _, word := range words {
		if strings.Contains(title, word) {
			return true
		}
	}
	for _, field := range []string{p.Nombre, p.ModelName(), p.Tipo} {
		folded := foldText(field)
		if folded != "" && strings.Contains(q.Lower, folded) {
			return true
		}
	}
	return isMachineCategory(p.Categoria)
}

// meaningfulWords splits the folded message into words longer than three
// characters; shorter tokens ("de", "la", "con") match everything.
func meaningfulWords(lower string) []string {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) > 3 {
			words = append(words, field)
		}
	}
	return words
}

func isMachineCategory(categoria string) bool {
	return containsAny(foldText(categoria), machineCategoryMarkers)
}

// tubeStrategy handles laser-tube queries, which the title word match
// misses when customers only name a brand (reci, puri).
type tubeStrategy struct{}

func (tubeStrategy) Name() string { return "tube" }

func (tubeStrategy) Attempt(ctx context.Context, q Query, products []catalog.Product) []catalog.Product {
	if !containsAny(q.Lower, tubeTerms) && !containsAny(q.Lower, tubeBrands) {
		return nil
	}
	var matched []catalog.Product
	for _, p := range products {
		if len(matched) >= maxTubeResults {
			break
		}
		title := foldText(p.Title())
		if strings.Contains(title, "tubo") || strings.Contains(title, "tube") ||
			strings.Contains(foldText(p.Categoria), "tubo") ||
			containsAny(foldText(p.BrandName()), tubeBrands) {
			matched = append(matched, p)
		}
	}
	return matched
}

// genericProductStrategy lists complete machines when the message names a
// product noun but nothing more specific matched.
type genericProductStrategy struct{}

func (genericProductStrategy) Name() string { return "generic-product" }

func (genericProductStrategy) Attempt(ctx context.Context, q Query, products []catalog.Product) []catalog.Product {
	if q.Generic || !containsAny(q.Lower, productNouns) {
		return nil
	}
	var matched []catalog.Product
	for _, p := range products {
		if len(matched) >= maxGenericResults {
			break
		}
		if !isMachineCategory(p.Categoria) {
			continue
		}
		if !containsAny(foldText(p.Title()), productNouns) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// chillerStrategy cross-sells chiller-compatible machines whenever cooling
// comes up, independent of what primary strategy fired.
type chillerStrategy struct{}

func (chillerStrategy) Name() string { return "chiller-cross-sell" }

var chillerFieldMarkers = []string{"accesor", "accessor", "cooling", "enfria", "refriger"}

func (chillerStrategy) Attempt(ctx context.Context, q Query, products []catalog.Product) []catalog.Product {
	if !containsAny(q.Lower, chillerTriggers) {
		return nil
	}
	var matched []catalog.Product
	for _, p := range products {
		if len(matched) >= maxCrossSellResults {
			break
		}
		if !isMachineCategory(p.Categoria) {
			continue
		}
		if recordMentions(p, []string{"chiller"}, chillerFieldMarkers) {
			matched = append(matched, p)
		}
	}
	return matched
}

// rotaryStrategy cross-sells rotary attachments and rotary-capable
// machines.
type rotaryStrategy struct{}

func (rotaryStrategy) Name() string { return "rotary-cross-sell" }

var rotaryFieldMarkers = []string{"accesor", "accessor"}

func (rotaryStrategy) Attempt(ctx context.Context, q Query, products []catalog.Product) []catalog.Product {
	if !containsAny(q.Lower, rotaryTriggers) {
		return nil
	}
	var matched []catalog.Product
	for _, p := range products {
		if len(matched) >= maxCrossSellResults {
			break
		}
		if recordMentions(p, rotaryMatchTerms, rotaryFieldMarkers) {
			matched = append(matched, p)
		}
	}
	return matched
}

// recordMentions reports whether the record's title, or any detail value
// under a key matching one of the markers, mentions one of the terms.
func recordMentions(p catalog.Product, terms []string, keyMarkers []string) bool {
	if containsAny(foldText(p.Title()), terms) {
		return true
	}
	for key, value := range p.Detalles {
		if !containsAny(foldText(key), keyMarkers) {
			continue
		}
		if containsAny(foldText(value), terms) {
			return true
		}
	}
	return false
}
