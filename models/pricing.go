package models

// PricingLine represents pricing information for a single order line
type PricingLine struct {
	ItemName  string `json:"itemName"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"` // paise
	LineTotal int64  `json:"lineTotal"` // paise
}

// PricingBreakdown represents the complete pricing calculation result
type PricingBreakdown struct {
	Total int64         `json:"total"` // paise
	Lines []PricingLine `json:"lines"`
}
