package economy

import (
	"errors"
	"fmt"
)

// SiteBuilding is one building type present at a site with its instance count.
// Multiple constructed instances of a building run recipes in parallel.
type SiteBuilding struct {
	building *Building
	count    int
}

func NewSiteBuilding(building *Building, count int) (SiteBuilding, error) {
	if building == nil {
		return SiteBuilding{}, errors.New("site building cannot be nil")
	}
	if count <= 0 {
		return SiteBuilding{}, fmt.Errorf("site building %s must have a positive instance count, got %d", building.Ticker(), count)
	}
	return SiteBuilding{building: building, count: count}, nil
}

func (sb SiteBuilding) Building() *Building {
	return sb.building
}

func (sb SiteBuilding) Count() int {
	return sb.count
}

// Site holds the buildings constructed on one planet (immutable snapshot).
type Site struct {
	planetID  string
	buildings []SiteBuilding
}

// NewSite creates a new Site with validation
func NewSite(planetID string, buildings []SiteBuilding) (*Site, error) {
	if planetID == "" {
		return nil, errors.New("site planet id cannot be empty")
	}
	seen := make(map[string]bool, len(buildings))
	for _, sb := range buildings {
		if seen[sb.Building().Ticker()] {
			return nil, fmt.Errorf("site %s has duplicate building entry %s", planetID, sb.Building().Ticker())
		}
		seen[sb.Building().Ticker()] = true
	}

	buildingsCopy := make([]SiteBuilding, len(buildings))
	copy(buildingsCopy, buildings)

	return &Site{planetID: planetID, buildings: buildingsCopy}, nil
}

func (s *Site) PlanetID() string {
	return s.planetID
}

// Buildings returns the building placements at this site
func (s *Site) Buildings() []SiteBuilding {
	buildingsCopy := make([]SiteBuilding, len(s.buildings))
	copy(buildingsCopy, s.buildings)
	return buildingsCopy
}

// Instances returns how many instances of the building are constructed here.
// Returns 0 for buildings not present at the site.
func (s *Site) Instances(buildingTicker string) int {
	for _, sb := range s.buildings {
		if sb.Building().Ticker() == buildingTicker {
			return sb.Count()
		}
	}
	return 0
}
