package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"flyaway/internal/models/db_models"
	"flyaway/internal/models/request_models"
	"flyaway/internal/models/response_models"
	"flyaway/internal/repositories"
	"flyaway/pkg/uploads"
	"flyaway/pkg/utils"
)

// ImageUpload is one uploaded file, already read off the wire.
type ImageUpload struct {
	Data []byte
	Name string
}

type ItineraryServiceInterface interface {
	GetItinerary(ctx context.Context, userID, tripID string) ([]response_models.DayResponse, error)
	// CreateDay appends a day. When no date is given the new day lands
	// one calendar day after the trip's current last day. Ad-hoc dates
	// are taken as-is; only the initial materialization guarantees
	// contiguity.
	CreateDay(ctx context.Context, userID, tripID string, request request_models.CreateDayRequest) (*response_models.DayResponse, error)
	UpdateDay(ctx context.Context, userID, dayID string, request request_models.UpdateDayRequest) (*response_models.DayResponse, error)
	DeleteDay(ctx context.Context, userID, dayID string) error
	// CreateActivity fills in defaults for missing fields: a numbered
	// placeholder name, and a window appended after the day's latest end
	// time (00:00-00:30 on an empty day), clamped at 23:59. Overlaps are
	// never validated.
	CreateActivity(ctx context.Context, userID, dayID string, request request_models.CreateActivityRequest) (*response_models.ActivityResponse, error)
	UpdateActivity(ctx context.Context, userID, activityID string, request request_models.UpdateActivityRequest) (*response_models.ActivityResponse, error)
	DeleteActivity(ctx context.Context, userID, activityID string) error
	AddImages(ctx context.Context, userID, activityID string, images []ImageUpload) (*response_models.ActivityResponse, error)
	RemoveImage(ctx context.Context, userID, activityID, url string) (*response_models.ActivityResponse, error)
}

type ItineraryService struct {
	itineraryRepo  repositories.ItineraryRepository
	membershipRepo repositories.MembershipRepository
	files          uploads.Store
}

func NewItineraryService(
	itineraryRepo repositories.ItineraryRepository,
	membershipRepo repositories.MembershipRepository,
	files uploads.Store,
) ItineraryServiceInterface {
	return &ItineraryService{
		itineraryRepo:  itineraryRepo,
		membershipRepo: membershipRepo,
		files:          files,
	}
}

func (i *ItineraryService) GetItinerary(ctx context.Context, userID, tripID string) ([]response_models.DayResponse, error) {

	membership, err := i.membershipRepo.Find(ctx, userID, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if membership == nil {
		// Read path: no membership reads as NotFound.
		return nil, utils.ErrTripNotFound
	}

	days, err := i.itineraryRepo.ListDays(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.DayResponse, 0, len(days))
	for idx := range days {
		out = append(out, *dayToResponse(&days[idx]))
	}
	return out, nil
}

func (i *ItineraryService) CreateDay(ctx context.Context, userID, tripID string, request request_models.CreateDayRequest) (*response_models.DayResponse, error) {

	if err := i.requireMember(ctx, userID, tripID); err != nil {
		return nil, err
	}

	var date time.Time
	if request.Date != nil {
		parsed, err := utils.ParseDate(*request.Date)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		date = parsed
	} else {
		last, err := i.itineraryRepo.LastDay(ctx, tripID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if last == nil {
			return nil, utils.ErrInvalidInput
		}
		date = utils.AddDays(last.Date, 1)
	}

	tripUUID, err := uuid.Parse(tripID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	day := &db_models.TripDay{
		TripID:             tripUUID,
		Date:               date,
		DestinationPlaceID: request.DestinationPlaceID,
		DestinationName:    request.DestinationName,
	}
	if err := i.itineraryRepo.InsertDay(ctx, day); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return dayToResponse(day), nil
}

func (i *ItineraryService) UpdateDay(ctx context.Context, userID, dayID string, request request_models.UpdateDayRequest) (*response_models.DayResponse, error) {

	day, err := i.dayForMutation(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}

	if request.DestinationPlaceID != nil {
		day.DestinationPlaceID = request.DestinationPlaceID
	}
	if request.DestinationName != nil {
		day.DestinationName = request.DestinationName
	}

	if err := i.itineraryRepo.UpdateDay(ctx, day); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return dayToResponse(day), nil
}

func (i *ItineraryService) DeleteDay(ctx context.Context, userID, dayID string) error {

	if _, err := i.dayForMutation(ctx, userID, dayID); err != nil {
		return err
	}

	orphanedRefs, err := i.itineraryRepo.DeleteDayCascade(ctx, dayID)
	if err != nil {
		if errors.Is(err, utils.ErrDayNotFound) {
			return utils.ErrDayNotFound
		}
		return utils.ErrDatabaseError
	}

	for _, ref := range orphanedRefs {
		if err := i.files.Delete(ref); err != nil {
			log.Printf("Failed to delete file %s for day %s: %v", ref, dayID, err)
		}
	}

	return nil
}

func (i *ItineraryService) CreateActivity(ctx context.Context, userID, dayID string, request request_models.CreateActivityRequest) (*response_models.ActivityResponse, error) {

	day, err := i.dayForMutation(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}

	existing, err := i.itineraryRepo.ListActivitiesForDay(ctx, day.ID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	activity := &db_models.Activity{
		TripDayID:   day.ID,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
		Place:       request.Place,
		Price:       request.Price,
		Description: request.Description,
		Images:      []string{},
	}

	if request.Name != nil && *request.Name != "" {
		activity.Name = *request.Name
	} else {
		activity.Name = fmt.Sprintf("Activity %d", len(existing)+1)
	}

	if request.StartTime == nil && request.EndTime == nil {
		start, end := nextActivityWindow(existing)
		activity.StartTime = &start
		activity.EndTime = &end
	}

	if err := i.itineraryRepo.InsertActivity(ctx, activity); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return activityToResponse(activity), nil
}

// nextActivityWindow appends after the day's latest end time: an empty
// day starts at 00:00-00:30, otherwise the window opens at the maximum
// existing end time and runs 30 minutes, capped at 23:59.
func nextActivityWindow(existing []db_models.Activity) (string, string) {
	if len(existing) == 0 {
		return "00:00", "00:30"
	}

	start := "00:00"
	for _, activity := range existing {
		if activity.EndTime != nil && *activity.EndTime > start {
			start = *activity.EndTime
		}
	}

	return start, utils.AddMinutesClock(start, 30)
}

func (i *ItineraryService) UpdateActivity(ctx context.Context, userID, activityID string, request request_models.UpdateActivityRequest) (*response_models.ActivityResponse, error) {

	activity, err := i.activityForMutation(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		activity.Name = *request.Name
	}
	// Start and end are patched independently; start after end is
	// accepted as-is (overnight windows stay representable).
	if request.StartTime != nil {
		activity.StartTime = request.StartTime
	}
	if request.EndTime != nil {
		activity.EndTime = request.EndTime
	}
	if request.Place != nil {
		activity.Place = request.Place
	}
	if request.Price != nil {
		activity.Price = request.Price
	}
	if request.Description != nil {
		activity.Description = request.Description
	}

	if err := i.itineraryRepo.UpdateActivity(ctx, activity); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return activityToResponse(activity), nil
}

func (i *ItineraryService) DeleteActivity(ctx context.Context, userID, activityID string) error {

	activity, err := i.activityForMutation(ctx, userID, activityID)
	if err != nil {
		return err
	}

	if err := i.itineraryRepo.DeleteActivity(ctx, activityID); err != nil {
		if errors.Is(err, utils.ErrActivityNotFound) {
			return utils.ErrActivityNotFound
		}
		return utils.ErrDatabaseError
	}

	// Image files referenced only by this activity go with it.
	for _, ref := range activity.Images {
		if err := i.files.Delete(ref); err != nil {
			log.Printf("Failed to delete file %s for activity %s: %v", ref, activityID, err)
		}
	}

	return nil
}

func (i *ItineraryService) AddImages(ctx context.Context, userID, activityID string, images []ImageUpload) (*response_models.ActivityResponse, error) {

	activity, err := i.activityForMutation(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	var refs []string
	for _, image := range images {
		ref, err := i.files.Save(image.Data, image.Name, "activities")
		if err != nil {
			// Files already written for this batch are not referenced by
			// any row yet; remove them instead of orphaning them on disk.
			for _, saved := range refs {
				if delErr := i.files.Delete(saved); delErr != nil {
					log.Printf("Failed to clean up file %s for activity %s: %v", saved, activityID, delErr)
				}
			}
			return nil, utils.ErrDatabaseError
		}
		refs = append(refs, ref)
	}
	activity.Images = append(activity.Images, refs...)

	if err := i.itineraryRepo.UpdateActivity(ctx, activity); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return activityToResponse(activity), nil
}

func (i *ItineraryService) RemoveImage(ctx context.Context, userID, activityID, url string) (*response_models.ActivityResponse, error) {

	activity, err := i.activityForMutation(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	found := false
	kept := make([]string, 0, len(activity.Images))
	for _, ref := range activity.Images {
		if ref == url {
			found = true
			continue
		}
		kept = append(kept, ref)
	}
	if !found {
		return nil, utils.ErrImageNotFound
	}

	activity.Images = kept
	if err := i.itineraryRepo.UpdateActivity(ctx, activity); err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Missing backing file is a no-op, not a failure.
	if err := i.files.Delete(url); err != nil {
		log.Printf("Failed to delete file %s for activity %s: %v", url, activityID, err)
	}

	return activityToResponse(activity), nil
}

// dayForMutation resolves the day's owning trip and checks membership.
// Caller-supplied trip ids are never trusted for nested authorization.
func (i *ItineraryService) dayForMutation(ctx context.Context, userID, dayID string) (*db_models.TripDay, error) {
	day, err := i.itineraryRepo.FindDay(ctx, dayID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if day == nil {
		return nil, utils.ErrDayNotFound
	}

	if err := i.requireMember(ctx, userID, day.TripID.String()); err != nil {
		return nil, err
	}
	return day, nil
}

func (i *ItineraryService) activityForMutation(ctx context.Context, userID, activityID string) (*db_models.Activity, error) {
	activity, err := i.itineraryRepo.FindActivity(ctx, activityID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if activity == nil {
		return nil, utils.ErrActivityNotFound
	}

	if _, err := i.dayForMutation(ctx, userID, activity.TripDayID.String()); err != nil {
		return nil, err
	}
	return activity, nil
}

func (i *ItineraryService) requireMember(ctx context.Context, userID, tripID string) error {
	membership, err := i.membershipRepo.Find(ctx, userID, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if membership == nil {
		return utils.ErrForbidden
	}
	return nil
}

func dayToResponse(day *db_models.TripDay) *response_models.DayResponse {
	activities := make([]response_models.ActivityResponse, 0, len(day.Activities))
	for idx := range day.Activities {
		activities = append(activities, *activityToResponse(&day.Activities[idx]))
	}
	return &response_models.DayResponse{
		ID:                 day.ID.String(),
		Date:               utils.FormatDate(day.Date),
		DestinationPlaceID: day.DestinationPlaceID,
		DestinationName:    day.DestinationName,
		Activities:         activities,
	}
}

func activityToResponse(activity *db_models.Activity) *response_models.ActivityResponse {
	images := activity.Images
	if images == nil {
		images = []string{}
	}
	return &response_models.ActivityResponse{
		ID:          activity.ID.String(),
		Name:        activity.Name,
		StartTime:   activity.StartTime,
		EndTime:     activity.EndTime,
		Place:       activity.Place,
		Price:       activity.Price,
		Description: activity.Description,
		Images:      images,
	}
}
