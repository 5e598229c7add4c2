package utils

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrTripNotFound          = errors.New("trip not found")
	ErrDayNotFound           = errors.New("day not found")
	ErrActivityNotFound      = errors.New("activity not found")
	ErrImageNotFound         = errors.New("image not found")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrFriendshipNotFound    = errors.New("friendship not found")
	ErrFriendRequestNotFound = errors.New("friend request not found")

	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailAlreadyExists  = errors.New("email already in use")
	ErrAlreadyMember       = errors.New("user already in trip")
	ErrFriendRequestExists = errors.New("friend request already exists")

	ErrSelfFriendRequest = errors.New("cannot send a friend request to yourself")
	ErrCannotRemoveSelf  = errors.New("admin cannot remove themselves")
	ErrCannotDemoteSelf  = errors.New("admin cannot demote themselves")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidInput      = errors.New("invalid input")

	ErrDatabaseError = errors.New("database error")
)
