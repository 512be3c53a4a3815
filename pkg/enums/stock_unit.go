package enums

import "fmt"

// StockUnit is a measurement unit accepted by the inventory surface. Every
// item stores its quantities in exactly one base unit.
type StockUnit string

const (
	StockUnitPiece      StockUnit = "pc"
	StockUnitKilogram   StockUnit = "kg"
	StockUnitGram       StockUnit = "g"
	StockUnitLitre      StockUnit = "l"
	StockUnitMillilitre StockUnit = "ml"
)

var validStockUnits = []StockUnit{
	StockUnitPiece,
	StockUnitKilogram,
	StockUnitGram,
	StockUnitLitre,
	StockUnitMillilitre,
}

// String implements fmt.Stringer.
func (u StockUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known StockUnit.
func (u StockUnit) IsValid() bool {
	for _, candidate := range validStockUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseStockUnit converts raw input into a StockUnit.
func ParseStockUnit(value string) (StockUnit, error) {
	for _, candidate := range validStockUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock unit %q", value)
}
