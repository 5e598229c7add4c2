package db_models

import "time"

type Trip struct {
	BaseModel
	Name        string
	Description *string
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	ImageURL    *string
	IsPublic    bool `gorm:"default:false"`

	Days        []TripDay
	Memberships []TripMembership
}
