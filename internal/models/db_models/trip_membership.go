package db_models

import "github.com/google/uuid"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// TripMembership is both the participant list and the access-control
// table: no row means no access. The unique index is the source of truth
// for duplicate-participant checks.
type TripMembership struct {
	BaseModel
	TripID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_trip_user"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_trip_user"`
	Role   string    `gorm:"default:member"`

	User User
	Trip Trip
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}
