package config

import (
	"encoding/json"
	"os"
)

// Model represents an available generation model
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog holds the available models and persona labels
type Catalog struct {
	Models   []Model  `json:"models"`
	Personas []string `json:"personas"`
}

// LoadCatalog reads a catalog from a JSON file. An empty path returns
// the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}

	if len(catalog.Models) == 0 {
		catalog.Models = DefaultCatalog().Models
	}
	if len(catalog.Personas) == 0 {
		catalog.Personas = DefaultCatalog().Personas
	}

	return &catalog, nil
}

// DefaultCatalog returns the models and personas the playground server
// ships with
func DefaultCatalog() *Catalog {
	return &Catalog{
		Models: []Model{
			{ID: "dolphin-phi:latest", Name: "Dolphin Phi"},
			{ID: "llama2:latest", Name: "Llama 2"},
			{ID: "mistral:latest", Name: "Mistral"},
		},
		Personas: []string{
			"Cyber-shaman",
			"Quantum poet",
			"Retro-futurist",
			"Dream archivist",
		},
	}
}

// GetAvailableModels returns the list of available models
func (c *Catalog) GetAvailableModels() []Model {
	return c.Models
}

// IsValidModel checks if a model ID is in the list of available models
func (c *Catalog) IsValidModel(modelID string) bool {
	for _, model := range c.Models {
		if model.ID == modelID {
			return true
		}
	}
	return false
}

// IsValidPersona checks if a persona label is in the catalog. The empty
// persona is always valid.
func (c *Catalog) IsValidPersona(persona string) bool {
	if persona == "" {
		return true
	}
	for _, p := range c.Personas {
		if p == persona {
			return true
		}
	}
	return false
}

// GetDefaultModel returns the first model as the default
func (c *Catalog) GetDefaultModel() string {
	if len(c.Models) > 0 {
		return c.Models[0].ID
	}
	// Fallback in case no models are configured (shouldn't happen)
	return "dolphin-phi:latest"
}
