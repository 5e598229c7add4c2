package request_models

// CreateTripRequest binds the multipart create form; the image part is
// read separately by the controller. Participants is a JSON-encoded
// array of emails, matching the web client's form encoding.
type CreateTripRequest struct {
	Name         string `form:"name" binding:"required"`
	Description  string `form:"description"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	IsPublic     bool   `form:"is_public"`
	Participants string `form:"participants"`
}

type UpdateTripRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	EndDate     *string `json:"end_date"`
	IsPublic    *bool   `json:"is_public"`
}

type AddParticipantRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ShiftStartDateRequest struct {
	StartDate string `json:"start_date" binding:"required"`
}
