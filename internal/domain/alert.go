package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AlertDirection string

const (
	DirectionAbove AlertDirection = "ABOVE"
	DirectionBelow AlertDirection = "BELOW"
)

func (d AlertDirection) Valid() bool {
	return d == DirectionAbove || d == DirectionBelow
}

// PriceAlert watches one asset for a threshold crossing. It fires at most
// once: the active -> triggered transition is terminal and an alert is only
// re-armed by the user creating a new one.
type PriceAlert struct {
	ID          string
	AssetID     string
	Direction   AlertDirection
	TargetPrice decimal.Decimal
	Active      bool
	TriggeredAt *time.Time
	CreatedAt   time.Time
}

// Met reports whether price satisfies the alert condition. Ties count as
// crossed for both directions.
func (a PriceAlert) Met(price decimal.Decimal) bool {
	cmp := price.Cmp(a.TargetPrice)
	switch a.Direction {
	case DirectionAbove:
		return cmp >= 0
	case DirectionBelow:
		return cmp <= 0
	default:
		return false
	}
}

// ActiveAlert is the evaluator's view of an alert: the alert row joined to
// the symbol it watches and the user who owns it.
type ActiveAlert struct {
	Alert     PriceAlert
	Symbol    string
	AssetType AssetType
	UserID    string
}
