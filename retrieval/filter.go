package retrieval

import (
	"context"
	"strings"

	"sales-agent/catalog"

	"go.uber.org/zap"
)

// Filter is the retrieval orchestrator: it classifies the message, runs
// the strategy cascade over a fresh catalog read, and renders the bounded
// context block the chat model receives. BuildContext never returns an
// error: every failure path degrades to a smaller or empty context.
type Filter struct {
	store     catalog.Store
	index     *ProductIndex
	logger    *zap.Logger
	primary   []Strategy
	crossSell []Strategy
}

func NewFilter(store catalog.Store, index *ProductIndex, topK int, logger *zap.Logger) *Filter {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Filter{
		store:  store,
		index:  index,
		logger: logger,
		// Precedence order: each primary strategy runs only when the ones
		// before it produced nothing.
		primary: []Strategy{
			semanticStrategy{index: index, topK: topK},
			keywordStrategy{},
			tubeStrategy{},
			genericProductStrategy{},
		},
		// Cross-sell strategies always run and append.
		crossSell: []Strategy{
			chillerStrategy{},
			rotaryStrategy{},
		},
	}
}

// BuildContext selects the relevant catalog slice for a message and
// renders it. An empty return value means nothing relevant was found and
// signals the caller that escalation is likely.
func (f *Filter) BuildContext(ctx context.Context, message string) string {
	q := ClassifyQuery(message)

	products, err := f.store.Products(ctx)
	if err != nil {
		f.logger.Warn("Failed to load catalog, continuing with empty catalog", zap.Error(err))
		products = nil
	}
	storeInfo, err := f.store.StoreInfo(ctx)
	if err != nil {
		f.logger.Warn("Failed to load store info, continuing without it", zap.Error(err))
		storeInfo = ""
	}
	links := catalog.ExtractCategoryLinks(storeInfo)

	var sections []section

	if storeInfo != "" && containsAny(q.Lower, storeInfoTerms) {
		// Verbatim and unbounded: the policy text is assumed short.
		sections = append(sections, section{label: labelStoreInfo, text: storeInfo})
	}

	// Generic browse messages get the category listing and nothing else.
	// Suppressing product matches here keeps a partial hit on "hola" from
	// inviting the model to invent specifics.
	if q.Generic && len(links) > 0 {
		sections = append(sections, categorySection(recommendCategories(q, links)))
		return renderSections(sections)
	}

	var matched []catalog.Product
	for _, strategy := range f.primary {
		matched = strategy.Attempt(ctx, q, products)
		if len(matched) > 0 {
			f.logger.Debug("Relevance strategy fired",
				zap.String("strategy", strategy.Name()),
				zap.Int("products", len(matched)))
			break
		}
	}
	for _, strategy := range f.crossSell {
		if extra := strategy.Attempt(ctx, q, products); len(extra) > 0 {
			f.logger.Debug("Cross-sell strategy fired",
				zap.String("strategy", strategy.Name()),
				zap.Int("products", len(extra)))
			matched = append(matched, extra...)
		}
	}
	if len(matched) > 0 {
		sections = append(sections, productSection(dedupeProducts(matched)))
	}

	if len(sections) == 0 {
		sections = defaultFallback(q, storeInfo, products, links)
	}
	return renderSections(sections)
}

// recommendCategories keeps the links whose category matches a keyword
// group the message also matched; with no overlap it falls back to the
// first few links overall.
func recommendCategories(q Query, links []catalog.CategoryLink) []catalog.CategoryLink {
	groups := matchedGroups(q.Lower)
	var recommended []catalog.CategoryLink
	for _, link := range links {
		folded := foldText(link.Categoria)
		for _, group := range groups {
			if containsAny(folded, group.Terms) {
				recommended = append(recommended, link)
				break
			}
		}
	}
	if len(recommended) == 0 {
		limit := len(links)
		if limit > maxCategoryFallback {
			limit = maxCategoryFallback
		}
		recommended = links[:limit]
	}
	return recommended
}

// defaultFallback guarantees a non-empty context whenever the catalog has
// anything at all: a short store excerpt, a small name/price summary, and
// best-effort category recommendations.
func defaultFallback(q Query, storeInfo string, products []catalog.Product, links []catalog.CategoryLink) []section {
	var sections []section
	if trimmed := strings.TrimSpace(storeInfo); trimmed != "" {
		sections = append(sections, section{
			label: labelStoreInfo,
			text:  truncateText(trimmed, maxStoreExcerptLen),
		})
	}
	if len(products) > 0 {
		sections = append(sections, summarySection(products))
	}
	if len(links) > 0 {
		sections = append(sections, categorySection(recommendCategories(q, links)))
	}
	return sections
}

// dedupeProducts drops duplicates (first occurrence wins, keyed by product
// ID with the title as fallback) and attaches the synthesized marketplace
// link to each survivor's own copy. Source records are never mutated.
func dedupeProducts(products []catalog.Product) []catalog.Product {
	seen := make(map[string]bool, len(products))
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		key := p.ProductID()
		if key == "" {
			key = p.Title()
		}
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, p.WithLink())
	}
	return out
}
