package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-query-api/internal/models"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrInvalidProduct    = errors.New("invalid product")
)

// document is the keyed file layout. JSON and YAML files may also hold a
// bare list of products; TOML needs the [[products]] table form.
type document struct {
	Products []models.Product `json:"products" yaml:"products" toml:"products"`
}

// FileProvider reads a catalog from a .json, .yaml/.yml or .toml file.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (f *FileProvider) Name() string { return "file:" + filepath.Base(f.path) }

func (f *FileProvider) Load(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	products, err := Decode(data, filepath.Ext(f.path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return products, nil
}

// Decode parses catalog data in the format named by ext and validates it.
func Decode(data []byte, ext string) ([]models.Product, error) {
	var (
		products []models.Product
		err      error
	)

	switch strings.ToLower(ext) {
	case ".json":
		products, err = decodeJSON(data)
	case ".yaml", ".yml":
		products, err = decodeYAML(data)
	case ".toml":
		var doc document
		err = toml.Unmarshal(data, &doc)
		products = doc.Products
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}

	if err := Validate(products); err != nil {
		return nil, err
	}
	return products, nil
}

func decodeJSON(data []byte) ([]models.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []models.Product
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Products, nil
}

// decodeYAML branches on the parsed root node, so comments, document markers
// and block-style sequences are all accepted.
func decodeYAML(data []byte) ([]models.Product, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var list []models.Product
		if err := node.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Products, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("line %d: catalog must be a list or a mapping with a products key", node.Line)
}

// Validate rejects products the query layer cannot reason about.
func Validate(products []models.Product) error {
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		switch {
		case strings.TrimSpace(p.ID) == "":
			return fmt.Errorf("%w: product %d has no id", ErrInvalidProduct, i)
		case seen[p.ID]:
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidProduct, p.ID)
		case strings.TrimSpace(p.Name) == "":
			return fmt.Errorf("%w: product %q has no name", ErrInvalidProduct, p.ID)
		case p.Price < 0:
			return fmt.Errorf("%w: product %q has negative price", ErrInvalidProduct, p.ID)
		case p.Rating < 0 || p.Rating > models.MaxRating:
			return fmt.Errorf("%w: product %q rating %.2f outside [0,%d]", ErrInvalidProduct, p.ID, p.Rating, models.MaxRating)
		}
		seen[p.ID] = true
	}
	return nil
}

// SaveFile writes products to path in the format implied by its extension.
func SaveFile(path string, products []models.Product) error {
	doc := document{Products: products}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	case ".toml":
		data, err = toml.Marshal(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
