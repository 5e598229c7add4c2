package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
)

type FriendshipRepository interface {
	Insert(ctx context.Context, friendship *db_models.Friendship) error
	// FindBetween returns the edge between two users in either direction,
	// regardless of status.
	FindBetween(ctx context.Context, userID, otherID string) (*db_models.Friendship, error)
	FindPending(ctx context.Context, recipientID, requesterID string) (*db_models.Friendship, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	DeleteBetween(ctx context.Context, userID, otherID string) (int64, error)
	ListAcceptedFor(ctx context.Context, userID string) ([]db_models.Friendship, error)
	ListPendingFor(ctx context.Context, recipientID string) ([]db_models.Friendship, error)
	CountAcceptedFor(ctx context.Context, userID string) (int64, error)
	CountPendingFor(ctx context.Context, recipientID string) (int64, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Insert(ctx context.Context, friendship *db_models.Friendship) error {
	return r.db.WithContext(ctx).Create(friendship).Error
}

func (r *friendshipRepository) FindBetween(ctx context.Context, userID, otherID string) (*db_models.Friendship, error) {
	var edge db_models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		First(&edge).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &edge, nil
}

func (r *friendshipRepository) FindPending(ctx context.Context, recipientID, requesterID string) (*db_models.Friendship, error) {
	var edge db_models.Friendship
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND requester_id = ? AND status = ?",
			recipientID, requesterID, db_models.FriendStatusPending).
		First(&edge).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &edge, nil
}

func (r *friendshipRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Friendship{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *friendshipRepository) DeleteBetween(ctx context.Context, userID, otherID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&db_models.Friendship{})
	return res.RowsAffected, res.Error
}

func (r *friendshipRepository) ListAcceptedFor(ctx context.Context, userID string) ([]db_models.Friendship, error) {
	var edges []db_models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, db_models.FriendStatusAccepted).
		Preload("Requester").
		Preload("Recipient").
		Find(&edges).Error

	if err != nil {
		return nil, err
	}

	return edges, nil
}

func (r *friendshipRepository) ListPendingFor(ctx context.Context, recipientID string) ([]db_models.Friendship, error) {
	var edges []db_models.Friendship
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, db_models.FriendStatusPending).
		Preload("Requester").
		Find(&edges).Error

	if err != nil {
		return nil, err
	}

	return edges, nil
}

func (r *friendshipRepository) CountAcceptedFor(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Friendship{}).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, db_models.FriendStatusAccepted).
		Count(&count).Error
	return count, err
}

func (r *friendshipRepository) CountPendingFor(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Friendship{}).
		Where("recipient_id = ? AND status = ?", recipientID, db_models.FriendStatusPending).
		Count(&count).Error
	return count, err
}
