package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flyaway/internal/models/request_models"
	"flyaway/internal/services"
	"flyaway/pkg/utils"
)

// maxImageBatch caps one upload request, not the cumulative total.
const maxImageBatch = 5

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// GetItinerary godoc
// @Summary Get the full itinerary (days and activities)
// @Tags Itinerary
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {array} response_models.DayResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/trips/{tripId} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	days, err := i.itineraryService.GetItinerary(c.Request.Context(), c.GetString("user_id"), c.Param("tripId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, days, "Itinerary fetched successfully")
}

// CreateDay godoc
// @Summary Append a day to a trip
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.CreateDayRequest true "Day payload"
// @Success 200 {object} response_models.DayResponse
// @Security BearerAuth
// @Router /itinerary/trips/{tripId}/days [post]
func (i *ItineraryController) CreateDay(c *gin.Context) {
	var req request_models.CreateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	day, err := i.itineraryService.CreateDay(c.Request.Context(), c.GetString("user_id"), c.Param("tripId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, day, "Day created successfully")
}

// UpdateDay godoc
// @Summary Update a day's destination
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param dayId path string true "Day ID"
// @Param request body request_models.UpdateDayRequest true "Destination patch"
// @Success 200 {object} response_models.DayResponse
// @Security BearerAuth
// @Router /itinerary/days/{dayId} [patch]
func (i *ItineraryController) UpdateDay(c *gin.Context) {
	var req request_models.UpdateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	day, err := i.itineraryService.UpdateDay(c.Request.Context(), c.GetString("user_id"), c.Param("dayId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, day, "Day updated successfully")
}

// DeleteDay godoc
// @Summary Delete a day and its activities
// @Tags Itinerary
// @Produce json
// @Param dayId path string true "Day ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/days/{dayId} [delete]
func (i *ItineraryController) DeleteDay(c *gin.Context) {
	if err := i.itineraryService.DeleteDay(c.Request.Context(), c.GetString("user_id"), c.Param("dayId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Day deleted")
}

// CreateActivity godoc
// @Summary Create an activity in a day
// @Description Missing fields get defaults: a numbered name and a 30-minute window appended after the day's latest end time
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param dayId path string true "Day ID"
// @Param request body request_models.CreateActivityRequest true "Activity payload"
// @Success 200 {object} response_models.ActivityResponse
// @Security BearerAuth
// @Router /itinerary/days/{dayId}/activities [post]
func (i *ItineraryController) CreateActivity(c *gin.Context) {
	var req request_models.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	activity, err := i.itineraryService.CreateActivity(c.Request.Context(), c.GetString("user_id"), c.Param("dayId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Activity created successfully")
}

// UpdateActivity godoc
// @Summary Update an activity
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body request_models.UpdateActivityRequest true "Activity patch"
// @Success 200 {object} response_models.ActivityResponse
// @Security BearerAuth
// @Router /itinerary/activities/{id} [patch]
func (i *ItineraryController) UpdateActivity(c *gin.Context) {
	var req request_models.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	activity, err := i.itineraryService.UpdateActivity(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Activity updated successfully")
}

// DeleteActivity godoc
// @Summary Delete an activity and its images
// @Tags Itinerary
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/activities/{id} [delete]
func (i *ItineraryController) DeleteActivity(c *gin.Context) {
	if err := i.itineraryService.DeleteActivity(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Activity deleted")
}

// UploadImages godoc
// @Summary Upload images for an activity
// @Tags Itinerary
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response_models.ActivityResponse
// @Security BearerAuth
// @Router /itinerary/activities/{id}/images [post]
func (i *ItineraryController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "At least one image is required")
		return
	}
	if len(fileHeaders) > maxImageBatch {
		utils.RespondError(c, http.StatusBadRequest, "Too many images in one upload")
		return
	}

	images := make([]services.ImageUpload, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		data, err := readUpload(fileHeader)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
			return
		}
		images = append(images, services.ImageUpload{Data: data, Name: fileHeader.Filename})
	}

	activity, err := i.itineraryService.AddImages(c.Request.Context(), c.GetString("user_id"), c.Param("id"), images)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Images uploaded successfully")
}

// DeleteImage godoc
// @Summary Remove an image from an activity
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body request_models.RemoveImageRequest true "Image url"
// @Success 200 {object} response_models.ActivityResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/activities/{id}/images [delete]
func (i *ItineraryController) DeleteImage(c *gin.Context) {
	var req request_models.RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	activity, err := i.itineraryService.RemoveImage(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.URL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Image removed")
}
