package entity

import "time"

// Balance es la cantidad actual (autoritativa) de un Item en una Location.
// Única por (item, location); Quantity >= 0 siempre.
type Balance struct {
	ItemID     string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}
