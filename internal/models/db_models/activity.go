package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Activity times are "HH:MM" clock strings. Ordering within a day sorts
// them lexically with nil/empty first; start after end is accepted as-is.
type Activity struct {
	BaseModel
	TripDayID   uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	StartTime   *string
	EndTime     *string
	Place       *string
	Price       *float64 `gorm:"type:numeric(10,2)"`
	Description *string
	Images      pq.StringArray `gorm:"type:text[]"`
}
