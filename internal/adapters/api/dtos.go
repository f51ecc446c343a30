package api

// Wire shapes of the FIO REST API. Field names follow the upstream JSON
// exactly; validation tags gate the conversion into domain objects.

type materialDTO struct {
	Ticker       string  `json:"Ticker" validate:"required"`
	Name         string  `json:"Name"`
	CategoryName string  `json:"CategoryName"`
	Weight       float64 `json:"Weight" validate:"gte=0"`
	Volume       float64 `json:"Volume" validate:"gte=0"`
}

type recipeLineDTO struct {
	// Some endpoints name the material Ticker, others CommodityTicker
	Ticker          string `json:"Ticker"`
	CommodityTicker string `json:"CommodityTicker"`
	Amount          int    `json:"Amount" validate:"gt=0"`
}

func (d recipeLineDTO) materialTicker() string {
	if d.CommodityTicker != "" {
		return d.CommodityTicker
	}
	return d.Ticker
}

type recipeDTO struct {
	RecipeName string          `json:"RecipeName" validate:"required"`
	DurationMs int64           `json:"DurationMs" validate:"gt=0"`
	Inputs     []recipeLineDTO `json:"Inputs" validate:"dive"`
	Outputs    []recipeLineDTO `json:"Outputs" validate:"dive"`
}

type buildingCostDTO struct {
	CommodityTicker string `json:"CommodityTicker" validate:"required"`
	Amount          int    `json:"Amount" validate:"gt=0"`
}

type buildingDTO struct {
	Ticker        string            `json:"Ticker" validate:"required"`
	Name          string            `json:"Name"`
	AreaCost      int               `json:"AreaCost" validate:"gte=0"`
	BuildingCosts []buildingCostDTO `json:"BuildingCosts" validate:"dive"`
	Recipes       []recipeDTO       `json:"Recipes" validate:"dive"`
}

type planetDTO struct {
	PlanetNaturalID string  `json:"PlanetNaturalId" validate:"required"`
	PlanetName      string  `json:"PlanetName"`
	Surface         bool    `json:"Surface"`
	Gravity         float64 `json:"Gravity"`
	Pressure        float64 `json:"Pressure"`
	Temperature     float64 `json:"Temperature"`
	CurrencyCode    string  `json:"CurrencyCode"`
}

type siteBuildingDTO struct {
	BuildingTicker string `json:"BuildingTicker" validate:"required"`
}

type siteDTO struct {
	SiteID           string            `json:"SiteId"`
	PlanetIdentifier string            `json:"PlanetIdentifier" validate:"required"`
	Buildings        []siteBuildingDTO `json:"Buildings" validate:"dive"`
}

type storageItemDTO struct {
	MaterialTicker string `json:"MaterialTicker" validate:"required"`
	MaterialAmount int    `json:"MaterialAmount" validate:"gte=0"`
}

type storageDTO struct {
	StorageID     string           `json:"StorageId" validate:"required"`
	AddressableID string           `json:"AddressableId"`
	Type          string           `json:"Type"`
	StorageItems  []storageItemDTO `json:"StorageItems" validate:"dive"`
}

type exchangeOrderDTO struct {
	OrderID     string  `json:"OrderId" validate:"required"`
	CompanyName string  `json:"CompanyName"`
	CompanyCode string  `json:"CompanyCode"`
	ItemCount   *int    `json:"ItemCount"` // null marks a market maker order with unbounded quantity
	ItemCost    float64 `json:"ItemCost" validate:"gte=0"`
}

type exchangeDTO struct {
	MaterialTicker string             `json:"MaterialTicker" validate:"required"`
	ExchangeCode   string             `json:"ExchangeCode" validate:"required"`
	Currency       string             `json:"Currency"`
	BuyingOrders   []exchangeOrderDTO `json:"BuyingOrders" validate:"dive"`
	SellingOrders  []exchangeOrderDTO `json:"SellingOrders" validate:"dive"`
}
