package economy

import "errors"

// Environment surcharge material tickers, per the building-cost rules of the
// game handbook: every construction on a planet pays extra materials
// determined by the planet's surface type, pressure, gravity and temperature.
const (
	surchargeSurface     = "MCG" // mineral construction granulate, rocky planets
	surchargeNoSurface   = "AEF" // aerostat foundation, gaseous planets
	surchargeLowPressure = "SEA" // sealant
	surchargeHighPress   = "HSE" // hardened structural elements
	surchargeLowGravity  = "MGC" // magnetic ground cover
	surchargeHighGravity = "BL"  // bulkhead
	surchargeLowTemp     = "INS" // insulation
	surchargeHighTemp    = "TSH" // thermal shielding
)

// Planet is an environment snapshot used to derive construction surcharges
// and the local currency (immutable value object).
type Planet struct {
	naturalID    string
	name         string
	surface      bool
	gravity      float64
	pressure     float64
	temperature  float64
	currencyCode string
}

// NewPlanet creates a new Planet with validation
func NewPlanet(naturalID, name string, surface bool, gravity, pressure, temperature float64, currencyCode string) (*Planet, error) {
	if naturalID == "" {
		return nil, errors.New("planet natural id cannot be empty")
	}
	return &Planet{
		naturalID:    naturalID,
		name:         name,
		surface:      surface,
		gravity:      gravity,
		pressure:     pressure,
		temperature:  temperature,
		currencyCode: currencyCode,
	}, nil
}

func (p *Planet) NaturalID() string {
	return p.naturalID
}

func (p *Planet) Name() string {
	return p.name
}

func (p *Planet) Surface() bool {
	return p.surface
}

func (p *Planet) Gravity() float64 {
	return p.gravity
}

func (p *Planet) Pressure() float64 {
	return p.pressure
}

func (p *Planet) Temperature() float64 {
	return p.temperature
}

func (p *Planet) CurrencyCode() string {
	return p.currencyCode
}

// AdditionalBuildMaterials returns the environment surcharge bill for
// constructing a building of the given area on this planet
// (material ticker -> amount).
func (p *Planet) AdditionalBuildMaterials(area int) map[string]int {
	additional := make(map[string]int)

	if p.surface {
		additional[surchargeSurface] = area * 4
	} else {
		// one AEF covers three area units, rounded up
		additional[surchargeNoSurface] = (area + 2) / 3
	}

	if p.pressure < 0.25 {
		additional[surchargeLowPressure] = area
	} else if p.pressure > 2 {
		additional[surchargeHighPress] = 1
	}

	if p.gravity < 0.25 {
		additional[surchargeLowGravity] = 1
	} else if p.gravity > 2.5 {
		additional[surchargeHighGravity] = 1
	}

	if p.temperature < -25 {
		additional[surchargeLowTemp] = area * 10
	} else if p.temperature > 75 {
		additional[surchargeHighTemp] = 1
	}

	return additional
}
