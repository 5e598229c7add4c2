package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
	"flyaway/internal/models/response_models"
	"flyaway/internal/repositories"
	"flyaway/pkg/utils"
)

type FriendServiceInterface interface {
	// Request creates a pending edge toward the user with the given
	// email. Any existing edge between the pair, in either direction and
	// any status, blocks a new request.
	Request(ctx context.Context, requesterID string, recipientEmail string) (*response_models.FriendResponse, error)
	Respond(ctx context.Context, recipientID string, requesterID string, accept bool) error
	List(ctx context.Context, userID string) ([]response_models.FriendResponse, error)
	Pending(ctx context.Context, userID string) ([]response_models.FriendResponse, error)
	Remove(ctx context.Context, userID string, otherID string) error
}

type FriendService struct {
	friendshipRepo repositories.FriendshipRepository
	userRepo       repositories.UserRepository
}

func NewFriendService(friendshipRepo repositories.FriendshipRepository, userRepo repositories.UserRepository) FriendServiceInterface {
	return &FriendService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
	}
}

func (f *FriendService) Request(ctx context.Context, requesterID string, recipientEmail string) (*response_models.FriendResponse, error) {

	recipient, err := f.userRepo.FindByEmail(ctx, recipientEmail)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if recipient == nil {
		return nil, utils.ErrUserNotFound
	}
	if recipient.ID.String() == requesterID {
		return nil, utils.ErrSelfFriendRequest
	}

	existing, err := f.friendshipRepo.FindBetween(ctx, requesterID, recipient.ID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrFriendRequestExists
	}

	requester, err := f.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if requester == nil {
		return nil, utils.ErrUserNotFound
	}

	edge := &db_models.Friendship{
		RequesterID: requester.ID,
		RecipientID: recipient.ID,
		Status:      db_models.FriendStatusPending,
	}
	if err := f.friendshipRepo.Insert(ctx, edge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrFriendRequestExists
		}
		return nil, utils.ErrDatabaseError
	}

	return &response_models.FriendResponse{
		ID:        recipient.ID.String(),
		Name:      recipient.Name,
		Email:     recipient.Email,
		AvatarURL: recipient.AvatarURL,
	}, nil
}

func (f *FriendService) Respond(ctx context.Context, recipientID string, requesterID string, accept bool) error {

	edge, err := f.friendshipRepo.FindPending(ctx, recipientID, requesterID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if edge == nil {
		return utils.ErrFriendRequestNotFound
	}

	status := db_models.FriendStatusRejected
	if accept {
		status = db_models.FriendStatusAccepted
	}

	if err := f.friendshipRepo.UpdateStatus(ctx, edge.ID.String(), status); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (f *FriendService) List(ctx context.Context, userID string) ([]response_models.FriendResponse, error) {

	edges, err := f.friendshipRepo.ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	friends := make([]response_models.FriendResponse, 0, len(edges))
	for _, edge := range edges {
		other := edge.Requester
		if edge.RequesterID.String() == userID {
			other = edge.Recipient
		}
		friends = append(friends, response_models.FriendResponse{
			ID:        other.ID.String(),
			Name:      other.Name,
			Email:     other.Email,
			AvatarURL: other.AvatarURL,
		})
	}

	return friends, nil
}

func (f *FriendService) Pending(ctx context.Context, userID string) ([]response_models.FriendResponse, error) {

	edges, err := f.friendshipRepo.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	requesters := make([]response_models.FriendResponse, 0, len(edges))
	for _, edge := range edges {
		requesters = append(requesters, response_models.FriendResponse{
			ID:        edge.Requester.ID.String(),
			Name:      edge.Requester.Name,
			Email:     edge.Requester.Email,
			AvatarURL: edge.Requester.AvatarURL,
		})
	}

	return requesters, nil
}

func (f *FriendService) Remove(ctx context.Context, userID string, otherID string) error {

	removed, err := f.friendshipRepo.DeleteBetween(ctx, userID, otherID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if removed == 0 {
		return utils.ErrFriendshipNotFound
	}

	return nil
}
