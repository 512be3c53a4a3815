package enums

import "fmt"

// StockTransactionType classifies a ledger movement against an inventory item.
type StockTransactionType string

const (
	StockTransactionReceive    StockTransactionType = "receive"
	StockTransactionIssue      StockTransactionType = "issue"
	StockTransactionReturn     StockTransactionType = "return"
	StockTransactionAdjustment StockTransactionType = "adjustment"
	StockTransactionWastage    StockTransactionType = "wastage"
)

var validStockTransactionTypes = []StockTransactionType{
	StockTransactionReceive,
	StockTransactionIssue,
	StockTransactionReturn,
	StockTransactionAdjustment,
	StockTransactionWastage,
}

// String implements fmt.Stringer.
func (t StockTransactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known StockTransactionType.
func (t StockTransactionType) IsValid() bool {
	for _, candidate := range validStockTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// Additive reports whether the type adds stock when given a positive quantity.
func (t StockTransactionType) Additive() bool {
	return t == StockTransactionReceive || t == StockTransactionReturn
}

// Subtractive reports whether the type removes stock when given a positive quantity.
func (t StockTransactionType) Subtractive() bool {
	return t == StockTransactionIssue || t == StockTransactionWastage
}

// ParseStockTransactionType converts raw input into a StockTransactionType.
func ParseStockTransactionType(value string) (StockTransactionType, error) {
	for _, candidate := range validStockTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock transaction type %q", value)
}
