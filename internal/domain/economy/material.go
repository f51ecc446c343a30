package economy

import "errors"

// Material represents a tradable commodity (immutable value object).
// Identity is the ticker; all maps in the engines are keyed by it.
type Material struct {
	ticker   string
	name     string
	category string
	weight   float64
	volume   float64
}

// NewMaterial creates a new Material with validation
func NewMaterial(ticker, name, category string, weight, volume float64) (*Material, error) {
	if ticker == "" {
		return nil, errors.New("material ticker cannot be empty")
	}
	if weight < 0 {
		return nil, errors.New("material weight must be non-negative")
	}
	if volume < 0 {
		return nil, errors.New("material volume must be non-negative")
	}

	return &Material{
		ticker:   ticker,
		name:     name,
		category: category,
		weight:   weight,
		volume:   volume,
	}, nil
}

func (m *Material) Ticker() string {
	return m.ticker
}

func (m *Material) Name() string {
	return m.name
}

func (m *Material) Category() string {
	return m.category
}

// Weight returns the per-unit mass in tons
func (m *Material) Weight() float64 {
	return m.weight
}

// Volume returns the per-unit volume in cubic meters
func (m *Material) Volume() float64 {
	return m.volume
}
