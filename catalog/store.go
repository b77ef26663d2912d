package catalog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Store supplies the catalog data the retrieval pipeline consumes. Both
// methods re-read their backing source on every call, so edits to the feed
// show up on the next message without a restart. Freshness over speed: the
// catalog is a few hundred records at most.
type Store interface {
	Products(ctx context.Context) ([]Product, error)
	StoreInfo(ctx context.Context) (string, error)
}

// FileStore reads the JSONL product feed and the policy text file from disk.
type FileStore struct {
	productsPath  string
	storeInfoPath string
	logger        *zap.Logger
}

func NewFileStore(productsPath, storeInfoPath string, logger *zap.Logger) *FileStore {
	return &FileStore{
		productsPath:  productsPath,
		storeInfoPath: storeInfoPath,
		logger:        logger,
	}
}

// Products loads the product feed. A missing file is an empty catalog, not
// an error; a line that fails to parse is skipped individually.
func (s *FileStore) Products(ctx context.Context) ([]Product, error) {
	f, err := os.Open(s.productsPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Product feed not found, treating catalog as empty",
				zap.String("path", s.productsPath))
			return nil, nil
		}
		return nil, fmt.Errorf("open product feed: %w", err)
	}
	defer f.Close()

	var products []Product
	scanner := bufio.NewScanner(f)
	// Scraped detail blobs can exceed the default 64KB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var p Product
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			s.logger.Debug("Skipping malformed product line",
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	if err := scanner.Err(); err != nil {
		return products, fmt.Errorf("read product feed: %w", err)
	}
	return products, nil
}

// StoreInfo loads the policy text blob. Missing file means no store info.
func (s *FileStore) StoreInfo(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.storeInfoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read store info: %w", err)
	}
	return string(data), nil
}
