package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flyaway/internal/models/request_models"
	"flyaway/internal/services"
	"flyaway/pkg/utils"
)

type FriendController struct {
	friendService services.FriendServiceInterface
}

func NewFriendController(friendService services.FriendServiceInterface) *FriendController {
	return &FriendController{
		friendService: friendService,
	}
}

// SendRequest godoc
// @Summary Send a friend request
// @Description Create a pending friend request addressed by email
// @Tags Friends
// @Accept json
// @Produce json
// @Param request body request_models.SendFriendRequest true "Recipient email"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /friends/requests [post]
func (f *FriendController) SendRequest(c *gin.Context) {
	var req request_models.SendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	friend, err := f.friendService.Request(c.Request.Context(), c.GetString("user_id"), req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, friend, "Friend request sent")
}

// Respond godoc
// @Summary Accept or reject a pending friend request
// @Tags Friends
// @Accept json
// @Produce json
// @Param request body request_models.RespondFriendRequest true "Requester id and decision"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /friends/requests/respond [post]
func (f *FriendController) Respond(c *gin.Context) {
	var req request_models.RespondFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := f.friendService.Respond(c.Request.Context(), c.GetString("user_id"), req.RequesterID, req.Accept)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Friend request handled")
}

// List godoc
// @Summary List accepted friends
// @Tags Friends
// @Produce json
// @Success 200 {array} response_models.FriendResponse
// @Security BearerAuth
// @Router /friends [get]
func (f *FriendController) List(c *gin.Context) {
	friends, err := f.friendService.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, friends, "Friends fetched successfully")
}

// Pending godoc
// @Summary List pending friend requests addressed to the caller
// @Tags Friends
// @Produce json
// @Success 200 {array} response_models.FriendResponse
// @Security BearerAuth
// @Router /friends/requests [get]
func (f *FriendController) Pending(c *gin.Context) {
	requesters, err := f.friendService.Pending(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, requesters, "Pending requests fetched successfully")
}

// Remove godoc
// @Summary Remove a friend
// @Description Delete the friendship edge regardless of who requested it
// @Tags Friends
// @Produce json
// @Param userId path string true "Other user's id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /friends/{userId} [delete]
func (f *FriendController) Remove(c *gin.Context) {
	otherID := c.Param("userId")
	if otherID == "" {
		utils.RespondError(c, http.StatusBadRequest, "User ID is required")
		return
	}

	if err := f.friendService.Remove(c.Request.Context(), c.GetString("user_id"), otherID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Friend removed")
}
