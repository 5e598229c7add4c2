package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
	"flyaway/internal/models/request_models"
	"flyaway/internal/models/response_models"
	"flyaway/internal/repositories"
	"flyaway/pkg/uploads"
	"flyaway/pkg/utils"
)

// CreateTripInput is the resolved create payload: dates already parsed,
// optional image already read into memory.
type CreateTripInput struct {
	Name              string
	Description       string
	StartDate         *time.Time
	EndDate           *time.Time
	IsPublic          bool
	ParticipantEmails []string
	ImageData         []byte
	ImageName         string
}

type TripServiceInterface interface {
	// Create builds the trip, the owner's admin membership and one day
	// per calendar date of the trip's range in a single transaction.
	// Attaching participants by email is best-effort: unknown emails are
	// reported as skipped, never as an error.
	Create(ctx context.Context, ownerID string, input CreateTripInput) (*response_models.CreateTripResponse, error)
	Update(ctx context.Context, userID, tripID string, request request_models.UpdateTripRequest) (*response_models.TripResponse, error)
	Delete(ctx context.Context, userID, tripID string) error
	SetImage(ctx context.Context, userID, tripID string, data []byte, filename string) (*response_models.TripResponse, error)
	// ShiftStartDate translates every day of the trip by the whole-day
	// delta between the current first day and newStart, preserving
	// relative offsets and leaving activities untouched.
	ShiftStartDate(ctx context.Context, userID, tripID string, newStart string) error
	AddParticipant(ctx context.Context, callerID, tripID, email string) error
	RemoveParticipant(ctx context.Context, callerID, tripID, userID string) error
	Leave(ctx context.Context, userID, tripID string) error
	ChangeRole(ctx context.Context, callerID, tripID, userID, role string) error
	GetParticipants(ctx context.Context, callerID, tripID string) ([]response_models.ParticipantResponse, error)
}

type TripService struct {
	tripRepo       repositories.TripRepository
	membershipRepo repositories.MembershipRepository
	itineraryRepo  repositories.ItineraryRepository
	userRepo       repositories.UserRepository
	files          uploads.Store
}

func NewTripService(
	tripRepo repositories.TripRepository,
	membershipRepo repositories.MembershipRepository,
	itineraryRepo repositories.ItineraryRepository,
	userRepo repositories.UserRepository,
	files uploads.Store,
) TripServiceInterface {
	return &TripService{
		tripRepo:       tripRepo,
		membershipRepo: membershipRepo,
		itineraryRepo:  itineraryRepo,
		userRepo:       userRepo,
		files:          files,
	}
}

func (t *TripService) Create(ctx context.Context, ownerID string, input CreateTripInput) (*response_models.CreateTripResponse, error) {

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if input.Name == "" {
		return nil, utils.ErrInvalidInput
	}

	owner, err := t.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if owner == nil {
		return nil, utils.ErrUserNotFound
	}

	var dayDates []time.Time
	if input.StartDate != nil {
		end := input.StartDate
		if input.EndDate != nil {
			end = input.EndDate
		}
		dayDates = utils.DatesInRange(*input.StartDate, *end)
	}

	memberIDs, report := t.resolveParticipants(ctx, owner.Email, input.ParticipantEmails)

	trip := &db_models.Trip{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsPublic:  input.IsPublic,
	}
	if input.Description != "" {
		trip.Description = &input.Description
	}

	if len(input.ImageData) > 0 {
		ref, err := t.files.Save(input.ImageData, input.ImageName, "")
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		trip.ImageURL = &ref
	}

	if err := t.tripRepo.CreateWithMembers(ctx, trip, ownerUUID, memberIDs, dayDates); err != nil {
		if trip.ImageURL != nil {
			if delErr := t.files.Delete(*trip.ImageURL); delErr != nil {
				log.Printf("Failed to clean up trip image %s: %v", *trip.ImageURL, delErr)
			}
		}
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CreateTripResponse{
		Trip:         *tripToResponse(trip),
		Participants: report,
	}, nil
}

// resolveParticipants maps emails to user ids, recording skipped entries
// instead of failing: this is the one sanctioned partial-success path.
func (t *TripService) resolveParticipants(ctx context.Context, ownerEmail string, emails []string) ([]uuid.UUID, response_models.ParticipantReport) {
	report := response_models.ParticipantReport{
		Added:   []string{},
		Skipped: []response_models.SkippedParticipant{},
	}

	seen := map[uuid.UUID]bool{}
	var memberIDs []uuid.UUID

	for _, email := range emails {
		if email == ownerEmail {
			report.Skipped = append(report.Skipped, response_models.SkippedParticipant{
				Email: email, Reason: "trip owner",
			})
			continue
		}

		user, err := t.userRepo.FindByEmail(ctx, email)
		if err != nil {
			report.Skipped = append(report.Skipped, response_models.SkippedParticipant{
				Email: email, Reason: "lookup failed",
			})
			continue
		}
		if user == nil {
			report.Skipped = append(report.Skipped, response_models.SkippedParticipant{
				Email: email, Reason: "unknown email",
			})
			continue
		}
		if seen[user.ID] {
			report.Skipped = append(report.Skipped, response_models.SkippedParticipant{
				Email: email, Reason: "already added",
			})
			continue
		}

		seen[user.ID] = true
		memberIDs = append(memberIDs, user.ID)
		report.Added = append(report.Added, email)
	}

	return memberIDs, report
}

func (t *TripService) Update(ctx context.Context, userID, tripID string, request request_models.UpdateTripRequest) (*response_models.TripResponse, error) {

	trip, err := t.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := t.requireAdmin(ctx, userID, tripID); err != nil {
		return nil, err
	}

	if request.Name != nil {
		trip.Name = *request.Name
	}
	if request.Description != nil {
		trip.Description = request.Description
	}
	if request.EndDate != nil {
		end, err := utils.ParseDate(*request.EndDate)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		trip.EndDate = &end
	}
	if request.IsPublic != nil {
		trip.IsPublic = *request.IsPublic
	}

	if err := t.tripRepo.Update(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return tripToResponse(trip), nil
}

func (t *TripService) Delete(ctx context.Context, userID, tripID string) error {

	if _, err := t.findTrip(ctx, tripID); err != nil {
		return err
	}
	if err := t.requireAdmin(ctx, userID, tripID); err != nil {
		return err
	}

	orphanedRefs, err := t.tripRepo.DeleteCascade(ctx, tripID)
	if err != nil {
		if errors.Is(err, utils.ErrTripNotFound) {
			return utils.ErrTripNotFound
		}
		return utils.ErrDatabaseError
	}

	// Row deletions are committed; file cleanup tolerates stragglers.
	for _, ref := range orphanedRefs {
		if err := t.files.Delete(ref); err != nil {
			log.Printf("Failed to delete file %s for trip %s: %v", ref, tripID, err)
		}
	}

	return nil
}

func (t *TripService) SetImage(ctx context.Context, userID, tripID string, data []byte, filename string) (*response_models.TripResponse, error) {

	trip, err := t.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := t.requireAdmin(ctx, userID, tripID); err != nil {
		return nil, err
	}

	if trip.ImageURL != nil && *trip.ImageURL != "" {
		if err := t.files.Delete(*trip.ImageURL); err != nil {
			log.Printf("Failed to delete previous trip image %s: %v", *trip.ImageURL, err)
		}
	}

	ref, err := t.files.Save(data, filename, "")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	trip.ImageURL = &ref
	if err := t.tripRepo.Update(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return tripToResponse(trip), nil
}

func (t *TripService) ShiftStartDate(ctx context.Context, userID, tripID string, newStart string) error {

	start, err := utils.ParseDate(newStart)
	if err != nil {
		return utils.ErrInvalidInput
	}

	if _, err := t.findTrip(ctx, tripID); err != nil {
		return err
	}
	if err := t.requireMember(ctx, userID, tripID); err != nil {
		return err
	}

	firstDay, err := t.itineraryRepo.FirstDay(ctx, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if firstDay == nil {
		return utils.ErrDayNotFound
	}

	// Calendar-date difference, never wall-clock subtraction: the shift
	// must survive DST boundaries without drifting a day.
	delta := utils.DaysBetween(firstDay.Date, start)

	if err := t.tripRepo.ShiftDates(ctx, tripID, delta, start); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (t *TripService) AddParticipant(ctx context.Context, callerID, tripID, email string) error {

	if _, err := t.findTrip(ctx, tripID); err != nil {
		return err
	}
	if err := t.requireAdmin(ctx, callerID, tripID); err != nil {
		return err
	}

	user, err := t.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	existing, err := t.membershipRepo.Find(ctx, user.ID.String(), tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrAlreadyMember
	}

	tripUUID, err := uuid.Parse(tripID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	membership := &db_models.TripMembership{
		TripID: tripUUID,
		UserID: user.ID,
		Role:   db_models.RoleMember,
	}
	if err := t.membershipRepo.Insert(ctx, membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.ErrAlreadyMember
		}
		return utils.ErrDatabaseError
	}

	return nil
}

func (t *TripService) RemoveParticipant(ctx context.Context, callerID, tripID, userID string) error {

	if _, err := t.findTrip(ctx, tripID); err != nil {
		return err
	}
	if err := t.requireAdmin(ctx, callerID, tripID); err != nil {
		return err
	}
	if callerID == userID {
		// Non-admin self-removal goes through Leave; an admin cannot
		// remove themselves on either path.
		return utils.ErrCannotRemoveSelf
	}

	removed, err := t.membershipRepo.Delete(ctx, userID, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if removed == 0 {
		return utils.ErrParticipantNotFound
	}

	return nil
}

func (t *TripService) Leave(ctx context.Context, userID, tripID string) error {

	if _, err := t.findTrip(ctx, tripID); err != nil {
		return err
	}

	membership, err := t.membershipRepo.Find(ctx, userID, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if membership == nil {
		return utils.ErrParticipantNotFound
	}
	if membership.Role == db_models.RoleAdmin {
		// A trip must keep an admin for its whole lifetime. Admins hand
		// the role to someone else before leaving.
		return utils.ErrCannotRemoveSelf
	}

	removed, err := t.membershipRepo.Delete(ctx, userID, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if removed == 0 {
		return utils.ErrParticipantNotFound
	}

	return nil
}

func (t *TripService) ChangeRole(ctx context.Context, callerID, tripID, userID, role string) error {

	if !db_models.ValidRole(role) {
		return utils.ErrInvalidRole
	}

	if _, err := t.findTrip(ctx, tripID); err != nil {
		return err
	}
	if err := t.requireAdmin(ctx, callerID, tripID); err != nil {
		return err
	}
	if callerID == userID && role == db_models.RoleMember {
		// Keeps the caller from orphaning the trip with zero admins.
		return utils.ErrCannotDemoteSelf
	}

	existing, err := t.membershipRepo.Find(ctx, userID, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrParticipantNotFound
	}

	if err := t.membershipRepo.UpdateRole(ctx, userID, tripID, role); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (t *TripService) GetParticipants(ctx context.Context, callerID, tripID string) ([]response_models.ParticipantResponse, error) {

	// Read path: a missing membership reads as NotFound so that trip
	// existence never leaks.
	membership, err := t.membershipRepo.Find(ctx, callerID, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if membership == nil {
		return nil, utils.ErrTripNotFound
	}

	memberships, err := t.membershipRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	participants := make([]response_models.ParticipantResponse, 0, len(memberships))
	for _, m := range memberships {
		participants = append(participants, response_models.ParticipantResponse{
			ID:        m.User.ID.String(),
			Name:      m.User.Name,
			Email:     m.User.Email,
			AvatarURL: m.User.AvatarURL,
			Role:      m.Role,
		})
	}

	return participants, nil
}

func (t *TripService) findTrip(ctx context.Context, tripID string) (*db_models.Trip, error) {
	trip, err := t.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func (t *TripService) requireAdmin(ctx context.Context, userID, tripID string) error {
	membership, err := t.membershipRepo.Find(ctx, userID, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if membership == nil || membership.Role != db_models.RoleAdmin {
		return utils.ErrForbidden
	}
	return nil
}

func (t *TripService) requireMember(ctx context.Context, userID, tripID string) error {
	membership, err := t.membershipRepo.Find(ctx, userID, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if membership == nil {
		return utils.ErrForbidden
	}
	return nil
}

func tripToResponse(trip *db_models.Trip) *response_models.TripResponse {
	out := &response_models.TripResponse{
		ID:          trip.ID.String(),
		Name:        trip.Name,
		Description: trip.Description,
		ImageURL:    trip.ImageURL,
		IsPublic:    trip.IsPublic,
	}
	if trip.StartDate != nil {
		out.StartDate = utils.FormatDate(*trip.StartDate)
	}
	if trip.EndDate != nil {
		out.EndDate = utils.FormatDate(*trip.EndDate)
	}
	return out
}
