package db_models

import (
	"time"

	"github.com/google/uuid"
)

type TripDay struct {
	BaseModel
	TripID             uuid.UUID `gorm:"type:uuid;index"`
	Date               time.Time `gorm:"type:date"`
	DestinationPlaceID *string
	DestinationName    *string

	Activities []Activity
}
