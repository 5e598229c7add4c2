package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"flyaway/internal/models/request_models"
	"flyaway/internal/services"
	"flyaway/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a new user account with a local password
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Account created successfully")
}

// Login godoc
// @Summary Login a user
// @Description Authenticate with email and password, returns a token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /users/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"token": token}, "Login successful")
}

// GoogleLogin godoc
// @Summary Login with a Google identity
// @Description Exchange a gateway-verified Google identity for a token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.GoogleLoginRequest true "Verified identity"
// @Success 200 {object} utils.APIResponse
// @Router /users/google-login [post]
func (a *AccountController) GoogleLogin(c *gin.Context) {
	var req request_models.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.accountService.LoginWithGoogle(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"token": token}, "Login successful")
}

// GetMe godoc
// @Summary Get the authenticated user
// @Tags Users
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me [get]
func (a *AccountController) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := a.accountService.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User fetched successfully")
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProfileRequest true "Profile patch"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (a *AccountController) UpdateProfile(c *gin.Context) {
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.accountService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Profile updated successfully")
}

// UploadAvatar godoc
// @Summary Upload a profile avatar
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/me/avatar [post]
func (a *AccountController) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Avatar file is required")
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	user, err := a.accountService.SetAvatar(c.Request.Context(), c.GetString("user_id"), data, fileHeader.Filename)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Avatar updated successfully")
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
