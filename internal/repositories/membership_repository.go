package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
)

type MembershipRepository interface {
	Insert(ctx context.Context, membership *db_models.TripMembership) error
	Find(ctx context.Context, userID, tripID string) (*db_models.TripMembership, error)
	Delete(ctx context.Context, userID, tripID string) (int64, error)
	UpdateRole(ctx context.Context, userID, tripID, role string) error
	ListByTrip(ctx context.Context, tripID string) ([]db_models.TripMembership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Insert(ctx context.Context, membership *db_models.TripMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *membershipRepository) Find(ctx context.Context, userID, tripID string) (*db_models.TripMembership, error) {
	var membership db_models.TripMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND trip_id = ?", userID, tripID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &membership, nil
}

func (r *membershipRepository) Delete(ctx context.Context, userID, tripID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND trip_id = ?", userID, tripID).
		Delete(&db_models.TripMembership{})
	return res.RowsAffected, res.Error
}

func (r *membershipRepository) UpdateRole(ctx context.Context, userID, tripID, role string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.TripMembership{}).
		Where("user_id = ? AND trip_id = ?", userID, tripID).
		Update("role", role).Error
}

func (r *membershipRepository) ListByTrip(ctx context.Context, tripID string) ([]db_models.TripMembership, error) {
	var memberships []db_models.TripMembership
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Preload("User").
		Find(&memberships).Error

	if err != nil {
		return nil, err
	}

	return memberships, nil
}
