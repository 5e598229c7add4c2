package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flyaway/internal/services"
	"flyaway/pkg/utils"
)

type ProfileController struct {
	visibilityService services.VisibilityServiceInterface
}

func NewProfileController(visibilityService services.VisibilityServiceInterface) *ProfileController {
	return &ProfileController{
		visibilityService: visibilityService,
	}
}

// GetProfile godoc
// @Summary Get a user's public profile
// @Description Friend counts plus the viewer's friend status; pending request count only on one's own profile
// @Tags Profiles
// @Produce json
// @Param userId path string true "Profile user id"
// @Success 200 {object} response_models.ProfileResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{userId}/profile [get]
func (p *ProfileController) GetProfile(c *gin.Context) {
	profileID := c.Param("userId")
	if profileID == "" {
		utils.RespondError(c, http.StatusBadRequest, "User ID is required")
		return
	}

	profile, err := p.visibilityService.GetUserProfile(c.Request.Context(), c.GetString("user_id"), profileID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile fetched successfully")
}

// GetProfileTrips godoc
// @Summary Get the trips visible on a user's profile
// @Description Public trips the user belongs to; private trips only for friends who share them
// @Tags Profiles
// @Produce json
// @Param userId path string true "Profile user id"
// @Success 200 {array} response_models.TripResponse
// @Security BearerAuth
// @Router /users/{userId}/trips [get]
func (p *ProfileController) GetProfileTrips(c *gin.Context) {
	profileID := c.Param("userId")
	if profileID == "" {
		utils.RespondError(c, http.StatusBadRequest, "User ID is required")
		return
	}

	trips, err := p.visibilityService.ListTripsForProfile(c.Request.Context(), c.GetString("user_id"), profileID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}
