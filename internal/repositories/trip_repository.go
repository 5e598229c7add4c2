package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
	"flyaway/pkg/utils"
)

type TripRepository interface {
	// CreateWithMembers creates the trip row, the owner's admin
	// membership, the materialized day rows and one member row per
	// resolved participant, all in a single transaction.
	CreateWithMembers(ctx context.Context, trip *db_models.Trip, ownerID uuid.UUID, memberIDs []uuid.UUID, dayDates []time.Time) error
	FindByID(ctx context.Context, id string) (*db_models.Trip, error)
	Update(ctx context.Context, trip *db_models.Trip) error
	// DeleteCascade removes activities, days, memberships and the trip
	// row in one transaction. It returns every image ref the deleted rows
	// carried so the caller can garbage collect the backing files after
	// commit.
	DeleteCascade(ctx context.Context, tripID string) ([]string, error)
	// ShiftDates moves every day of the trip by deltaDays whole days and
	// stores newStart as the trip's start date, in one transaction.
	ShiftDates(ctx context.Context, tripID string, deltaDays int, newStart time.Time) error
	ListByUser(ctx context.Context, userID string) ([]db_models.Trip, error)
	ListPublicByUser(ctx context.Context, userID string) ([]db_models.Trip, error)
	// ListPrivateShared returns private trips where both users hold a
	// membership row.
	ListPrivateShared(ctx context.Context, viewerID, profileID string) ([]db_models.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) CreateWithMembers(
	ctx context.Context,
	trip *db_models.Trip,
	ownerID uuid.UUID,
	memberIDs []uuid.UUID,
	dayDates []time.Time,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}

		owner := db_models.TripMembership{
			TripID: trip.ID,
			UserID: ownerID,
			Role:   db_models.RoleAdmin,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		for _, memberID := range memberIDs {
			m := db_models.TripMembership{
				TripID: trip.ID,
				UserID: memberID,
				Role:   db_models.RoleMember,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}

		for _, date := range dayDates {
			day := db_models.TripDay{
				TripID: trip.ID,
				Date:   date,
			}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *tripRepository) FindByID(ctx context.Context, id string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

func (r *tripRepository) DeleteCascade(ctx context.Context, tripID string) ([]string, error) {
	var orphanedRefs []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip db_models.Trip
		if err := tx.First(&trip, "id = ?", tripID).Error; err != nil {
			return err
		}
		if trip.ImageURL != nil && *trip.ImageURL != "" {
			orphanedRefs = append(orphanedRefs, *trip.ImageURL)
		}

		dayIDs := tx.Model(&db_models.TripDay{}).
			Select("id").
			Where("trip_id = ?", tripID)

		var activities []db_models.Activity
		if err := tx.Where("trip_day_id IN (?)", dayIDs).Find(&activities).Error; err != nil {
			return err
		}
		for _, activity := range activities {
			orphanedRefs = append(orphanedRefs, activity.Images...)
		}

		if err := tx.Where("trip_day_id IN (?)", dayIDs).
			Delete(&db_models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", tripID).
			Delete(&db_models.TripDay{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", tripID).
			Delete(&db_models.TripMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Trip{}, "id = ?", tripID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTripNotFound
		}
		return nil, err
	}

	return orphanedRefs, nil
}

func (r *tripRepository) ShiftDates(ctx context.Context, tripID string, deltaDays int, newStart time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var days []db_models.TripDay
		if err := tx.Where("trip_id = ?", tripID).Find(&days).Error; err != nil {
			return err
		}

		for _, day := range days {
			shifted := utils.AddDays(day.Date, deltaDays)
			if err := tx.Model(&db_models.TripDay{}).
				Where("id = ?", day.ID).
				Update("date", shifted).Error; err != nil {
				return err
			}
		}

		return tx.Model(&db_models.Trip{}).
			Where("id = ?", tripID).
			Update("start_date", newStart).Error
	})
}

func (r *tripRepository) ListByUser(ctx context.Context, userID string) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.memberTripIDs(userID)).
		Find(&trips).Error

	if err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *tripRepository) ListPublicByUser(ctx context.Context, userID string) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Where("id IN (?)", r.memberTripIDs(userID)).
		Find(&trips).Error

	if err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *tripRepository) ListPrivateShared(ctx context.Context, viewerID, profileID string) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("is_public = ?", false).
		Where("id IN (?)", r.memberTripIDs(profileID)).
		Where("id IN (?)", r.memberTripIDs(viewerID)).
		Find(&trips).Error

	if err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *tripRepository) memberTripIDs(userID string) *gorm.DB {
	return r.db.Model(&db_models.TripMembership{}).
		Select("trip_id").
		Where("user_id = ?", userID)
}
