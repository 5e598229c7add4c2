package request_models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the identity already verified by the OAuth
// gateway; the handshake itself happens outside this service.
type GoogleLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=50"`
	Bio  *string `json:"bio" binding:"omitempty,max=500"`
}
