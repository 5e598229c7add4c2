package request_models

type SendFriendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RespondFriendRequest struct {
	RequesterID string `json:"requester_id" binding:"required,uuid4"`
	Accept      bool   `json:"accept"`
}
