package services

import (
	"context"

	"flyaway/internal/models/db_models"
	"flyaway/internal/models/response_models"
	"flyaway/internal/repositories"
	"flyaway/pkg/utils"
)

// VisibilityService computes what a viewer may see of another user's
// trips and profile. Public trips are visible to friends and non-friends
// alike; private trips only surface to friends, and only where the
// viewer is also a member.
type VisibilityServiceInterface interface {
	ListTripsForViewer(ctx context.Context, viewerID string) ([]response_models.TripResponse, error)
	ListTripsForProfile(ctx context.Context, viewerID, profileID string) ([]response_models.TripResponse, error)
	GetTripDetail(ctx context.Context, viewerID, tripID string) (*response_models.TripDetailResponse, error)
	GetUserProfile(ctx context.Context, viewerID, profileID string) (*response_models.ProfileResponse, error)
}

type VisibilityService struct {
	tripRepo       repositories.TripRepository
	membershipRepo repositories.MembershipRepository
	friendshipRepo repositories.FriendshipRepository
	userRepo       repositories.UserRepository
}

func NewVisibilityService(
	tripRepo repositories.TripRepository,
	membershipRepo repositories.MembershipRepository,
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
) VisibilityServiceInterface {
	return &VisibilityService{
		tripRepo:       tripRepo,
		membershipRepo: membershipRepo,
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
	}
}

func (v *VisibilityService) ListTripsForViewer(ctx context.Context, viewerID string) ([]response_models.TripResponse, error) {

	trips, err := v.tripRepo.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return tripsToResponses(trips), nil
}

func (v *VisibilityService) ListTripsForProfile(ctx context.Context, viewerID, profileID string) ([]response_models.TripResponse, error) {

	if viewerID == profileID {
		return v.ListTripsForViewer(ctx, viewerID)
	}

	trips, err := v.tripRepo.ListPublicByUser(ctx, profileID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	edge, err := v.friendshipRepo.FindBetween(ctx, viewerID, profileID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if edge != nil && edge.Status == db_models.FriendStatusAccepted {
		shared, err := v.tripRepo.ListPrivateShared(ctx, viewerID, profileID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		trips = append(trips, shared...)
	}

	return tripsToResponses(trips), nil
}

func (v *VisibilityService) GetTripDetail(ctx context.Context, viewerID, tripID string) (*response_models.TripDetailResponse, error) {

	membership, err := v.membershipRepo.Find(ctx, viewerID, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if membership == nil {
		return nil, utils.ErrTripNotFound
	}

	trip, err := v.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	return &response_models.TripDetailResponse{
		Trip: *tripToResponse(trip),
		Role: membership.Role,
		Permissions: response_models.TripPermissions{
			CanEdit:             membership.Role == db_models.RoleAdmin,
			CanViewItinerary:    true,
			CanViewParticipants: true,
			CanViewImages:       true,
		},
	}, nil
}

func (v *VisibilityService) GetUserProfile(ctx context.Context, viewerID, profileID string) (*response_models.ProfileResponse, error) {

	user, err := v.userRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	friendsCount, err := v.friendshipRepo.CountAcceptedFor(ctx, profileID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	profile := &response_models.ProfileResponse{
		ID:           user.ID.String(),
		Name:         user.Name,
		AvatarURL:    user.AvatarURL,
		Bio:          user.Bio,
		FriendsCount: friendsCount,
	}

	if viewerID == profileID {
		profile.FriendStatus = response_models.FriendStatusMe

		pending, err := v.friendshipRepo.CountPendingFor(ctx, profileID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		profile.PendingRequestsCount = &pending
		return profile, nil
	}

	edge, err := v.friendshipRepo.FindBetween(ctx, viewerID, profileID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	switch {
	case edge == nil:
		profile.FriendStatus = response_models.FriendStatusNone
	case edge.Status == db_models.FriendStatusAccepted:
		profile.FriendStatus = response_models.FriendStatusFriend
	case edge.Status == db_models.FriendStatusPending:
		profile.FriendStatus = response_models.FriendStatusRequested
	default:
		profile.FriendStatus = response_models.FriendStatusNone
	}

	return profile, nil
}

func tripsToResponses(trips []db_models.Trip) []response_models.TripResponse {
	out := make([]response_models.TripResponse, 0, len(trips))
	for idx := range trips {
		out = append(out, *tripToResponse(&trips[idx]))
	}
	return out
}
