package services

import (
	"context"
	"errors"
	"testing"

	"flyaway/internal/models/db_models"
	"flyaway/pkg/utils"
)

type friendFixture struct {
	users       *fakeUserRepo
	friendships *fakeFriendshipRepo
	service     FriendServiceInterface
}

func newFriendFixture() *friendFixture {
	users := newFakeUserRepo()
	friendships := newFakeFriendshipRepo(users)
	return &friendFixture{
		users:       users,
		friendships: friendships,
		service:     NewFriendService(friendships, users),
	}
}

func TestFriendRequestLifecycle(t *testing.T) {
	f := newFriendFixture()
	ana := f.users.add("Ana", "ana@example.com")
	ben := f.users.add("Ben", "ben@example.com")

	ctx := context.Background()

	sent, err := f.service.Request(ctx, ana.ID.String(), "ben@example.com")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if sent.ID != ben.ID.String() {
		t.Fatalf("response id = %s, want recipient", sent.ID)
	}

	pending, err := f.service.Pending(ctx, ben.ID.String())
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Email != "ana@example.com" {
		t.Fatalf("pending = %+v", pending)
	}

	if err := f.service.Respond(ctx, ben.ID.String(), ana.ID.String(), true); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	// Accepted friendship is symmetric: both sides list the other.
	anaFriends, _ := f.service.List(ctx, ana.ID.String())
	benFriends, _ := f.service.List(ctx, ben.ID.String())
	if len(anaFriends) != 1 || anaFriends[0].Email != "ben@example.com" {
		t.Fatalf("ana's friends = %+v", anaFriends)
	}
	if len(benFriends) != 1 || benFriends[0].Email != "ana@example.com" {
		t.Fatalf("ben's friends = %+v", benFriends)
	}
}

func TestFriendRequestRejections(t *testing.T) {
	f := newFriendFixture()
	ana := f.users.add("Ana", "ana@example.com")
	ben := f.users.add("Ben", "ben@example.com")

	ctx := context.Background()

	if _, err := f.service.Request(ctx, ana.ID.String(), "ana@example.com"); !errors.Is(err, utils.ErrSelfFriendRequest) {
		t.Fatalf("self request: got %v, want ErrSelfFriendRequest", err)
	}
	if _, err := f.service.Request(ctx, ana.ID.String(), "ghost@example.com"); !errors.Is(err, utils.ErrUserNotFound) {
		t.Fatalf("unknown email: got %v, want ErrUserNotFound", err)
	}

	if _, err := f.service.Request(ctx, ana.ID.String(), "ben@example.com"); err != nil {
		t.Fatalf("Request: %v", err)
	}

	// The pair is blocked in both directions while any edge exists.
	if _, err := f.service.Request(ctx, ana.ID.String(), "ben@example.com"); !errors.Is(err, utils.ErrFriendRequestExists) {
		t.Fatalf("repeat request: got %v, want ErrFriendRequestExists", err)
	}
	if _, err := f.service.Request(ctx, ben.ID.String(), "ana@example.com"); !errors.Is(err, utils.ErrFriendRequestExists) {
		t.Fatalf("reverse request: got %v, want ErrFriendRequestExists", err)
	}
}

func TestRespondToMissingRequest(t *testing.T) {
	f := newFriendFixture()
	ana := f.users.add("Ana", "ana@example.com")
	ben := f.users.add("Ben", "ben@example.com")

	err := f.service.Respond(context.Background(), ben.ID.String(), ana.ID.String(), true)
	if !errors.Is(err, utils.ErrFriendRequestNotFound) {
		t.Fatalf("got %v, want ErrFriendRequestNotFound", err)
	}
}

func TestRespondReject(t *testing.T) {
	f := newFriendFixture()
	ana := f.users.add("Ana", "ana@example.com")
	ben := f.users.add("Ben", "ben@example.com")
	f.friendships.add(ana.ID, ben.ID, db_models.FriendStatusPending)

	ctx := context.Background()

	if err := f.service.Respond(ctx, ben.ID.String(), ana.ID.String(), false); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	friends, _ := f.service.List(ctx, ben.ID.String())
	if len(friends) != 0 {
		t.Fatalf("rejected request produced friends: %+v", friends)
	}

	// The rejected edge still blocks a fresh request.
	if _, err := f.service.Request(ctx, ana.ID.String(), "ben@example.com"); !errors.Is(err, utils.ErrFriendRequestExists) {
		t.Fatalf("request after reject: got %v, want ErrFriendRequestExists", err)
	}
}

func TestRemoveFriend(t *testing.T) {
	f := newFriendFixture()
	ana := f.users.add("Ana", "ana@example.com")
	ben := f.users.add("Ben", "ben@example.com")
	f.friendships.add(ana.ID, ben.ID, db_models.FriendStatusAccepted)

	ctx := context.Background()

	// Removal works from either side of the edge.
	if err := f.service.Remove(ctx, ben.ID.String(), ana.ID.String()); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := f.service.Remove(ctx, ben.ID.String(), ana.ID.String()); !errors.Is(err, utils.ErrFriendshipNotFound) {
		t.Fatalf("second remove: got %v, want ErrFriendshipNotFound", err)
	}
}
