package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"flyaway/internal/models/request_models"
	"flyaway/internal/services"
	"flyaway/pkg/utils"
)

type TripController struct {
	tripService       services.TripServiceInterface
	visibilityService services.VisibilityServiceInterface
}

func NewTripController(
	tripService services.TripServiceInterface,
	visibilityService services.VisibilityServiceInterface,
) *TripController {
	return &TripController{
		tripService:       tripService,
		visibilityService: visibilityService,
	}
}

// Create godoc
// @Summary Create a trip
// @Description Create a trip with optional image, date range and participant emails; days are materialized for the date range
// @Tags Trips
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} response_models.CreateTripResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) Create(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	input := services.CreateTripInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}

	if req.StartDate != "" {
		start, err := utils.ParseDate(req.StartDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid start date")
			return
		}
		input.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := utils.ParseDate(req.EndDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid end date")
			return
		}
		input.EndDate = &end
	}

	// The web client sends participants as a JSON-encoded array field.
	if req.Participants != "" {
		if err := json.Unmarshal([]byte(req.Participants), &input.ParticipantEmails); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid participants list")
			return
		}
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		data, err := readUpload(fileHeader)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
			return
		}
		input.ImageData = data
		input.ImageName = fileHeader.Filename
	}

	trip, err := t.tripService.Create(c.Request.Context(), c.GetString("user_id"), input)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip created successfully")
}

// GetAll godoc
// @Summary Get all trips for the authenticated user
// @Tags Trips
// @Produce json
// @Success 200 {array} response_models.TripResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) GetAll(c *gin.Context) {
	trips, err := t.visibilityService.ListTripsForViewer(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetOne godoc
// @Summary Get a trip with the viewer's role and permissions
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response_models.TripDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [get]
func (t *TripController) GetOne(c *gin.Context) {
	detail, err := t.visibilityService.GetTripDetail(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Trip fetched successfully")
}

// Update godoc
// @Summary Update trip fields
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.UpdateTripRequest true "Trip patch"
// @Success 200 {object} response_models.TripResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [put]
func (t *TripController) Update(c *gin.Context) {
	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

// Delete godoc
// @Summary Delete a trip and everything under it
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [delete]
func (t *TripController) Delete(c *gin.Context) {
	if err := t.tripService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted")
}

// UpdateImage godoc
// @Summary Replace the trip image
// @Tags Trips
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response_models.TripResponse
// @Security BearerAuth
// @Router /trips/{id}/image [post]
func (t *TripController) UpdateImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Image file is required")
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	trip, err := t.tripService.SetImage(c.Request.Context(), c.GetString("user_id"), c.Param("id"), data, fileHeader.Filename)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip image updated")
}

// UpdateStartDate godoc
// @Summary Shift the trip's start date
// @Description Moves every day of the itinerary by the same whole-day delta
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.ShiftStartDateRequest true "New start date"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/start-date [patch]
func (t *TripController) UpdateStartDate(c *gin.Context) {
	var req request_models.ShiftStartDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := t.tripService.ShiftStartDate(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.StartDate)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Start date updated")
}

// AddParticipant godoc
// @Summary Add a participant to a trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.AddParticipantRequest true "Participant email"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/participants [post]
func (t *TripController) AddParticipant(c *gin.Context) {
	var req request_models.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := t.tripService.AddParticipant(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Participant added")
}

// RemoveParticipant godoc
// @Summary Remove a participant from a trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Param userId path string true "Participant's user id"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/participants/{userId} [delete]
func (t *TripController) RemoveParticipant(c *gin.Context) {
	err := t.tripService.RemoveParticipant(c.Request.Context(), c.GetString("user_id"), c.Param("id"), c.Param("userId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Participant removed")
}

// Leave godoc
// @Summary Leave a trip
// @Description Removes the caller's own membership; admins must hand off their role first
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/leave [post]
func (t *TripController) Leave(c *gin.Context) {
	if err := t.tripService.Leave(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Left trip")
}

// ChangeRole godoc
// @Summary Change a participant's role
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param userId path string true "Participant's user id"
// @Param request body request_models.ChangeRoleRequest true "New role"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/participants/{userId}/role [patch]
func (t *TripController) ChangeRole(c *gin.Context) {
	var req request_models.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := t.tripService.ChangeRole(c.Request.Context(), c.GetString("user_id"), c.Param("id"), c.Param("userId"), req.Role)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Role updated")
}

// GetParticipants godoc
// @Summary Get all participants of a trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {array} response_models.ParticipantResponse
// @Security BearerAuth
// @Router /trips/{id}/participants [get]
func (t *TripController) GetParticipants(c *gin.Context) {
	participants, err := t.tripService.GetParticipants(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, participants, "Participants fetched successfully")
}
