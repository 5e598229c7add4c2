package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
	"flyaway/pkg/utils"
)

// activityOrder sorts activities within a day: start time ascending with
// missing times first, creation order as the stable tiebreak.
const activityOrder = "start_time ASC NULLS FIRST, created_at ASC"

type ItineraryRepository interface {
	ListDays(ctx context.Context, tripID string) ([]db_models.TripDay, error)
	InsertDay(ctx context.Context, day *db_models.TripDay) error
	FindDay(ctx context.Context, dayID string) (*db_models.TripDay, error)
	UpdateDay(ctx context.Context, day *db_models.TripDay) error
	// DeleteDayCascade deletes the day and its activities in one
	// transaction, returning the image refs the activities carried.
	DeleteDayCascade(ctx context.Context, dayID string) ([]string, error)
	// LastDay returns the trip's maximum-date day, nil when the trip has
	// no days yet.
	LastDay(ctx context.Context, tripID string) (*db_models.TripDay, error)
	FirstDay(ctx context.Context, tripID string) (*db_models.TripDay, error)
	FindActivity(ctx context.Context, id string) (*db_models.Activity, error)
	ListActivitiesForDay(ctx context.Context, dayID string) ([]db_models.Activity, error)
	InsertActivity(ctx context.Context, activity *db_models.Activity) error
	UpdateActivity(ctx context.Context, activity *db_models.Activity) error
	DeleteActivity(ctx context.Context, id string) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) ListDays(ctx context.Context, tripID string) ([]db_models.TripDay, error) {
	var days []db_models.TripDay
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("date ASC").
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order(activityOrder)
		}).
		Find(&days).Error

	if err != nil {
		return nil, err
	}

	return days, nil
}

func (r *itineraryRepository) InsertDay(ctx context.Context, day *db_models.TripDay) error {
	return r.db.WithContext(ctx).Create(day).Error
}

func (r *itineraryRepository) FindDay(ctx context.Context, dayID string) (*db_models.TripDay, error) {
	var day db_models.TripDay
	err := r.db.WithContext(ctx).First(&day, "id = ?", dayID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &day, nil
}

func (r *itineraryRepository) UpdateDay(ctx context.Context, day *db_models.TripDay) error {
	return r.db.WithContext(ctx).Save(day).Error
}

func (r *itineraryRepository) DeleteDayCascade(ctx context.Context, dayID string) ([]string, error) {
	var orphanedRefs []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var activities []db_models.Activity
		if err := tx.Where("trip_day_id = ?", dayID).Find(&activities).Error; err != nil {
			return err
		}
		for _, activity := range activities {
			orphanedRefs = append(orphanedRefs, activity.Images...)
		}

		if err := tx.Where("trip_day_id = ?", dayID).
			Delete(&db_models.Activity{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&db_models.TripDay{}, "id = ?", dayID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrDayNotFound
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return orphanedRefs, nil
}

func (r *itineraryRepository) LastDay(ctx context.Context, tripID string) (*db_models.TripDay, error) {
	var day db_models.TripDay
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("date DESC").
		First(&day).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &day, nil
}

func (r *itineraryRepository) FirstDay(ctx context.Context, tripID string) (*db_models.TripDay, error) {
	var day db_models.TripDay
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("date ASC").
		First(&day).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &day, nil
}

func (r *itineraryRepository) FindActivity(ctx context.Context, id string) (*db_models.Activity, error) {
	var activity db_models.Activity
	err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &activity, nil
}

func (r *itineraryRepository) ListActivitiesForDay(ctx context.Context, dayID string) ([]db_models.Activity, error) {
	var activities []db_models.Activity
	err := r.db.WithContext(ctx).
		Where("trip_day_id = ?", dayID).
		Order(activityOrder).
		Find(&activities).Error

	if err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *itineraryRepository) InsertActivity(ctx context.Context, activity *db_models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *itineraryRepository) UpdateActivity(ctx context.Context, activity *db_models.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *itineraryRepository) DeleteActivity(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&db_models.Activity{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrActivityNotFound
	}
	return nil
}
