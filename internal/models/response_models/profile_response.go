package response_models

const (
	FriendStatusMe        = "me"
	FriendStatusNone      = "none"
	FriendStatusRequested = "requested"
	FriendStatusFriend    = "friend"
)

type ProfileResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	FriendsCount int64   `json:"friends_count"`
	FriendStatus string  `json:"friend_status"`
	// Only filled in when the viewer looks at their own profile.
	PendingRequestsCount *int64 `json:"pending_requests_count,omitempty"`
}
