package retrieval

import (
	"context"
	"strings"
	"sync/atomic"

	"sales-agent/catalog"
	"sales-agent/config"

	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

// CollectionName is the persisted vector collection holding one document
// per catalog product.
const CollectionName = "productos"

const defaultTopK = 7

// LoadState is the lifecycle of the index handle. It transitions Unloaded
// → Loading → Ready at most once per process; queries observing anything
// but Ready get empty results instead of blocking on the load.
type LoadState int32

const (
	StateUnloaded LoadState = iota
	StateLoading
	StateReady
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unloaded"
	}
}

// ProductIndex is the query-time handle over the persisted vector
// collection. Every failure mode collapses to "no semantic results":
// semantic search is an enhancement layer the conversation must never
// block on.
type ProductIndex struct {
	cfg        *config.Config
	embedder   chromem.EmbeddingFunc
	logger     *zap.Logger
	state      atomic.Int32
	collection atomic.Pointer[chromem.Collection]
}

func NewProductIndex(cfg *config.Config, embedder chromem.EmbeddingFunc, logger *zap.Logger) *ProductIndex {
	return &ProductIndex{
		cfg:      cfg,
		embedder: embedder,
		logger:   logger,
	}
}

// State reports the current lifecycle state. Safe for concurrent use.
func (ix *ProductIndex) State() LoadState {
	return LoadState(ix.state.Load())
}

// Load opens the persisted collection and warms the embedding endpoint.
// Meant to run on one background goroutine at process start; it publishes
// the collection pointer before flipping the Ready flag, so concurrent
// readers that observe Ready always see the collection.
func (ix *ProductIndex) Load(ctx context.Context) {
	if !ix.state.CompareAndSwap(int32(StateUnloaded), int32(StateLoading)) {
		return
	}

	db, err := chromem.NewPersistentDB(ix.cfg.IndexPath, false)
	if err != nil {
		ix.logger.Warn("Could not open persisted vector index, semantic search disabled",
			zap.String("path", ix.cfg.IndexPath),
			zap.Error(err))
		ix.state.Store(int32(StateUnloaded))
		return
	}

	collection := db.GetCollection(CollectionName, ix.embedder)
	if collection == nil {
		ix.logger.Warn("Vector index has not been built, semantic search disabled",
			zap.String("path", ix.cfg.IndexPath),
			zap.String("collection", CollectionName))
		ix.state.Store(int32(StateUnloaded))
		return
	}

	// One probe call so the embedding backend loads its model now instead
	// of on the first user message.
	if _, err := ix.embedder(ctx, "warmup"); err != nil {
		ix.logger.Warn("Embedding endpoint not reachable, semantic search disabled",
			zap.Error(err))
		ix.state.Store(int32(StateUnloaded))
		return
	}

	ix.collection.Store(collection)
	ix.state.Store(int32(StateReady))
	ix.logger.Info("Product index ready",
		zap.Int("documents", collection.Count()))
}

// Search runs a semantic query over the product collection. It returns nil
// without blocking when the index is not Ready, and converts every
// query-time error into a logged empty result. When filters is non-empty,
// results are constrained to metadata whose category contains at least one
// filter term.
func (ix *ProductIndex) Search(ctx context.Context, query string, filters []string, topK int) []catalog.Product {
	if ix.State() != StateReady {
		return nil
	}
	collection := ix.collection.Load()
	if collection == nil {
		return nil
	}

	if topK <= 0 {
		topK = defaultTopK
	}
	count := collection.Count()
	if count == 0 {
		return nil
	}
	if topK > count {
		topK = count
	}

	results, err := collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		ix.logger.Warn("Vector query failed, returning no semantic results",
			zap.String("query", query),
			zap.Error(err))
		return nil
	}

	var products []catalog.Product
	for _, res := range results {
		if len(filters) > 0 && !categoryMatchesFilters(res.Metadata["categoria"], filters) {
			continue
		}
		products = append(products, productFromMetadata(res.Metadata))
	}
	return products
}

func categoryMatchesFilters(categoria string, filters []string) bool {
	folded := foldText(categoria)
	for _, filter := range filters {
		if strings.Contains(folded, filter) {
			return true
		}
	}
	return false
}

// productFromMetadata rebuilds a catalog record from the flat metadata the
// builder stored with each document.
func productFromMetadata(meta map[string]string) catalog.Product {
	p := catalog.Product{
		ID:        meta["id"],
		Categoria: meta["categoria"],
		Nombre:    meta["titulo"],
		Marca:     meta["marca"],
		Modelo:    meta["modelo"],
		Precio:    meta["precio"],
		Detalles:  catalog.Attributes{},
	}
	for key, value := range meta {
		switch key {
		case "id", "titulo", "categoria", "marca", "modelo", "precio", "link_mercadolibre":
			// base fields, already mapped; the link is re-synthesized
		default:
			p.Detalles[key] = value
		}
	}
	return p
}
