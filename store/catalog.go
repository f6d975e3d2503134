// Package store reads and writes the storefront's on-disk state: the product
// catalog, the editable HTML pages and uploaded images.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go-storefront/models"
	"go-storefront/utils"
)

// ErrNotArray is returned when a catalog write is not a JSON array
var ErrNotArray = errors.New("products must be an array")

// Catalog is the product list held in a single JSON file
type Catalog struct {
	path   string
	logger *utils.Logger
}

func NewCatalog(path string, logger *utils.Logger) *Catalog {
	return &Catalog{path: path, logger: logger.WithComponent("catalog")}
}

// Read returns the catalog. A missing or corrupt file is logged and read as
// an empty list.
func (c *Catalog) Read(_ context.Context) []models.Product {
	data, err := os.ReadFile(c.path)
	if err != nil {
		c.logger.Errorw("Error reading products", "path", c.path, "error", err)
		return []models.Product{}
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.logger.Errorw("Error parsing products", "path", c.path, "error", err)
		return []models.Product{}
	}
	if products == nil {
		products = []models.Product{}
	}
	return products
}

// Write replaces the whole catalog with raw, which must be a JSON array.
// Nothing on disk changes when validation fails.
func (c *Catalog) Write(_ context.Context, raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return ErrNotArray
	}

	var products []models.Product
	if err := json.Unmarshal(trimmed, &products); err != nil {
		return fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	if products == nil {
		products = []models.Product{}
	}

	out, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	if err := utils.WriteFileAtomic(c.path, out, 0o644); err != nil {
		c.logger.Errorw("Error writing products", "path", c.path, "error", err)
		return fmt.Errorf("failed to write products: %w", err)
	}
	return nil
}
