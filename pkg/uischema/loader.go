package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{brands: make(map[string]Brand)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for brandID, raw := range doc.Brands {
			id := strings.TrimSpace(brandID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty brand id", path)
			}
			if _, exists := store.brands[id]; exists {
				return fmt.Errorf("uischema: duplicate brand %q (file %s)", id, path)
			}

			brand, err := normaliseBrand(raw, id, path)
			if err != nil {
				return err
			}
			store.brands[id] = brand
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Brand returns the annotations for the supplied brand id.
func (s *Store) Brand(id string) (Brand, bool) {
	if s == nil {
		return Brand{}, false
	}
	brand, ok := s.brands[id]
	return brand, ok
}

// Empty reports whether the store holds any brands.
func (s *Store) Empty() bool {
	return s == nil || len(s.brands) == 0
}

type documentFile struct {
	Brands map[string]brandFile `json:"brands" yaml:"brands"`
}

type brandFile struct {
	Title  string                 `json:"title" yaml:"title"`
	Order  []string               `json:"order" yaml:"order"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normaliseBrand(raw brandFile, id, source string) (Brand, error) {
	brand := Brand{
		ID:     id,
		Source: source,
		Title:  strings.TrimSpace(raw.Title),
		Fields: make(map[string]FieldConfig, len(raw.Fields)),
	}

	for idx, name := range raw.Order {
		entry := NormalizeFieldPath(name)
		if entry == "" {
			return Brand{}, fmt.Errorf("uischema: brand %q (file %s) order entry %d is empty", id, source, idx)
		}
		brand.Order = append(brand.Order, entry)
	}

	for key, cfg := range raw.Fields {
		normalised := NormalizeFieldPath(key)
		if normalised == "" {
			return Brand{}, fmt.Errorf("uischema: brand %q (file %s) field key %q normalises to empty path", id, source, key)
		}
		if _, exists := brand.Fields[normalised]; exists {
			return Brand{}, fmt.Errorf("uischema: brand %q (file %s) defines duplicate field path %q", id, source, normalised)
		}
		cleaned := FieldConfig{
			Label:       strings.TrimSpace(cfg.Label),
			Tooltip:     strings.TrimSpace(cfg.Tooltip),
			Placeholder: strings.TrimSpace(cfg.Placeholder),
		}
		if cleaned.empty() {
			return Brand{}, fmt.Errorf("uischema: brand %q (file %s) field %q carries no annotations", id, source, key)
		}
		brand.Fields[normalised] = cleaned
	}

	return brand, nil
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
