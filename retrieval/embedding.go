package retrieval

import (
	"context"

	"sales-agent/config"
	"sales-agent/llmclient"

	lru "github.com/hashicorp/golang-lru"
	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

const defaultEmbedCacheSize = 512

// NewCachedEmbedder wraps the embedding endpoint in an LRU cache so
// repeated queries and index rebuild runs skip the HTTP round trip. The
// same func is shared by the online index handle and the offline builder.
func NewCachedEmbedder(cfg *config.Config, client *llmclient.Client, logger *zap.Logger) chromem.EmbeddingFunc {
	size := cfg.EmbedCacheSize
	if size <= 0 {
		size = defaultEmbedCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		logger.Warn("Failed to create embedding cache, embedding without one", zap.Error(err))
		return func(ctx context.Context, doc string) ([]float32, error) {
			return client.Embed(ctx, cfg.EmbeddingHost, doc)
		}
	}
	return func(ctx context.Context, doc string) ([]float32, error) {
		if cached, ok := cache.Get(doc); ok {
			return cached.([]float32), nil
		}
		vec, err := client.Embed(ctx, cfg.EmbeddingHost, doc)
		if err != nil {
			return nil, err
		}
		cache.Add(doc, vec)
		return vec, nil
	}
}
