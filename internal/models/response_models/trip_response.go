package response_models

type TripResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	StartDate   string  `json:"start_date,omitempty"` // "2006-01-02"
	EndDate     string  `json:"end_date,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsPublic    bool    `json:"is_public"`
}

type ParticipantResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Role      string  `json:"role"`
}

// ParticipantReport is returned by trip creation: attaching participants
// by email is best-effort, and skipped entries are reported instead of
// failing the whole call.
type ParticipantReport struct {
	Added   []string             `json:"added"`
	Skipped []SkippedParticipant `json:"skipped"`
}

type SkippedParticipant struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type CreateTripResponse struct {
	Trip         TripResponse      `json:"trip"`
	Participants ParticipantReport `json:"participants"`
}

type TripPermissions struct {
	CanEdit             bool `json:"can_edit"`
	CanViewItinerary    bool `json:"can_view_itinerary"`
	CanViewParticipants bool `json:"can_view_participants"`
	CanViewImages       bool `json:"can_view_images"`
}

type TripDetailResponse struct {
	Trip        TripResponse    `json:"trip"`
	Role        string          `json:"role"`
	Permissions TripPermissions `json:"permissions"`
}
