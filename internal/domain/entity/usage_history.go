package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UsageHistory es un registro inmutable de consumo de un producto.
// ItemName y Unit se copian del producto en el momento del registro.
type UsageHistory struct {
	ID               string
	ItemID           string
	ItemName         string
	Date             time.Time
	QuantityConsumed decimal.Decimal // siempre > 0
	Unit             string
}
