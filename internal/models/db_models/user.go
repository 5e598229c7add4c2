package db_models

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	BaseModel
	Name         string
	Email        string  `gorm:"uniqueIndex"`
	PasswordHash *string // nil for OAuth-provisioned accounts
	Provider     string  `gorm:"default:local"`
	AvatarURL    *string
	Bio          *string

	Memberships []TripMembership
}
