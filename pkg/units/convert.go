package units

import (
	"fmt"

	"github.com/avendra/hotelops-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// factorToBase maps a unit to its family base unit and the multiplier that
// converts a quantity into that base.
var factorToBase = map[enums.StockUnit]struct {
	base   enums.StockUnit
	factor decimal.Decimal
}{
	enums.StockUnitPiece:      {enums.StockUnitPiece, decimal.NewFromInt(1)},
	enums.StockUnitKilogram:   {enums.StockUnitGram, decimal.NewFromInt(1000)},
	enums.StockUnitGram:       {enums.StockUnitGram, decimal.NewFromInt(1)},
	enums.StockUnitLitre:      {enums.StockUnitMillilitre, decimal.NewFromInt(1000)},
	enums.StockUnitMillilitre: {enums.StockUnitMillilitre, decimal.NewFromInt(1)},
}

// ToBase converts qty expressed in from-units into the item's base unit. The
// stock ledger only ever operates in base units; callers convert before they
// reach it.
func ToBase(qty decimal.Decimal, from, base enums.StockUnit) (decimal.Decimal, error) {
	if !from.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown unit %q", from)
	}
	if !base.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown base unit %q", base)
	}
	if from == base {
		return qty, nil
	}

	fromEntry, ok := factorToBase[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown unit %q", from)
	}
	baseEntry, ok := factorToBase[base]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown base unit %q", base)
	}
	if fromEntry.base != baseEntry.base {
		return decimal.Zero, fmt.Errorf("cannot convert %s to %s", from, base)
	}

	return qty.Mul(fromEntry.factor).Div(baseEntry.factor), nil
}
