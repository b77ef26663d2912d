package retrieval

import (
	"context"
	"fmt"

	"sales-agent/catalog"

	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

// BuildIndex embeds every catalog product and persists the vector
// collection to disk. Run offline (cmd/indexer); the server only ever
// opens the result read-only. Products without any usable ID are skipped
// and duplicate IDs are indexed once. Returns the number of documents
// indexed.
func BuildIndex(ctx context.Context, store catalog.Store, indexPath string, embedder chromem.EmbeddingFunc, logger *zap.Logger) (int, error) {
	products, err := store.Products(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		logger.Warn("Catalog is empty, nothing to index")
		return 0, nil
	}

	db, err := chromem.NewPersistentDB(indexPath, false)
	if err != nil {
		return 0, fmt.Errorf("open persistent index: %w", err)
	}
	collection, err := db.GetOrCreateCollection(CollectionName, nil, embedder)
	if err != nil {
		return 0, fmt.Errorf("create collection: %w", err)
	}

	seen := make(map[string]bool, len(products))
	var docs []chromem.Document
	for _, p := range products {
		pid := p.ProductID()
		if pid == "" || seen[pid] {
			continue
		}
		seen[pid] = true
		docs = append(docs, chromem.Document{
			ID:       pid,
			Content:  p.SearchText(),
			Metadata: indexMetadata(pid, p),
		})
	}
	if len(docs) == 0 {
		logger.Warn("No products carried an ID, nothing to index")
		return 0, nil
	}

	if err := collection.AddDocuments(ctx, docs, 4); err != nil {
		return 0, fmt.Errorf("add documents to collection: %w", err)
	}
	logger.Info("Product index built",
		zap.Int("documents", len(docs)),
		zap.String("path", indexPath))
	return len(docs), nil
}

// indexMetadata flattens a product into the per-document metadata used to
// rebuild records at query time. Detail keys ride along unless they would
// shadow a base field.
func indexMetadata(pid string, p catalog.Product) map[string]string {
	meta := map[string]string{
		"id":                pid,
		"titulo":            p.Title(),
		"categoria":         p.Categoria,
		"marca":             p.BrandName(),
		"modelo":            p.ModelName(),
		"precio":            p.Precio,
		"link_mercadolibre": catalog.MercadoLibreLink(pid),
	}
	for key, value := range p.Detalles {
		if _, exists := meta[key]; !exists {
			meta[key] = value
		}
	}
	return meta
}
