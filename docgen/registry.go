package docgen

import (
	"fmt"
	"sync"
)

// DefinitionRegistry stores document configurations by name.
type DefinitionRegistry struct {
	mu   sync.RWMutex
	docs map[string]DocumentConfig
}

// NewDefinitionRegistry creates an empty registry.
func NewDefinitionRegistry() *DefinitionRegistry {
	return &DefinitionRegistry{docs: make(map[string]DocumentConfig)}
}

// Register adds a document configuration.
func (r *DefinitionRegistry) Register(doc DocumentConfig) error {
	if err := ValidateDocument(doc); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[doc.Name]; exists {
		return NewError(KindValidation, fmt.Sprintf("document %q already registered", doc.Name), nil)
	}
	normalizeDefinitions(doc.DataPlaceholders)
	r.docs[doc.Name] = doc
	return nil
}

// Resolve returns the document configuration for the name.
func (r *DefinitionRegistry) Resolve(name string) (DocumentConfig, error) {
	r.mu.RLock()
	doc, ok := r.docs[name]
	r.mu.RUnlock()
	if !ok {
		return DocumentConfig{}, NewError(KindNotFound, fmt.Sprintf("document %q not found", name), nil)
	}
	return doc, nil
}

// DataSourceRegistry stores data sources by key.
type DataSourceRegistry struct {
	mu      sync.RWMutex
	sources map[string]DataSource
}

// NewDataSourceRegistry creates an empty registry.
func NewDataSourceRegistry() *DataSourceRegistry {
	return &DataSourceRegistry{sources: make(map[string]DataSource)}
}

// Register adds a data source.
func (r *DataSourceRegistry) Register(key string, source DataSource) error {
	if key == "" {
		return NewError(KindValidation, "data source key is required", nil)
	}
	if source == nil {
		return NewError(KindValidation, "data source is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sources[key]; exists {
		return NewError(KindValidation, fmt.Sprintf("data source %q already registered", key), nil)
	}
	r.sources[key] = source
	return nil
}

// Resolve finds a data source by key.
func (r *DataSourceRegistry) Resolve(key string) (DataSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.sources[key]
	return source, ok
}
