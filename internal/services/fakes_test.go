package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
	"flyaway/pkg/utils"
)

// In-memory repository fakes backing the service tests. They mirror the
// postgres behavior the services rely on: nil for missing rows, rows
// affected counts, and gorm.ErrDuplicatedKey on unique violations.

type fakeUserRepo struct {
	users map[uuid.UUID]*db_models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*db_models.User{}}
}

func (f *fakeUserRepo) add(name, email string) *db_models.User {
	user := &db_models.User{Name: name, Email: email, Provider: db_models.ProviderLocal}
	user.ID = uuid.New()
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *db_models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*db_models.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	user, ok := f.users[parsed]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

type fakeMembershipRepo struct {
	memberships []*db_models.TripMembership
	users       *fakeUserRepo
}

func newFakeMembershipRepo(users *fakeUserRepo) *fakeMembershipRepo {
	return &fakeMembershipRepo{users: users}
}

func (f *fakeMembershipRepo) add(tripID, userID uuid.UUID, role string) *db_models.TripMembership {
	m := &db_models.TripMembership{TripID: tripID, UserID: userID, Role: role}
	m.ID = uuid.New()
	f.memberships = append(f.memberships, m)
	return m
}

func (f *fakeMembershipRepo) Insert(_ context.Context, membership *db_models.TripMembership) error {
	for _, m := range f.memberships {
		if m.TripID == membership.TripID && m.UserID == membership.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	f.memberships = append(f.memberships, membership)
	return nil
}

func (f *fakeMembershipRepo) Find(_ context.Context, userID, tripID string) (*db_models.TripMembership, error) {
	for _, m := range f.memberships {
		if m.UserID.String() == userID && m.TripID.String() == tripID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipRepo) Delete(_ context.Context, userID, tripID string) (int64, error) {
	kept := f.memberships[:0]
	var removed int64
	for _, m := range f.memberships {
		if m.UserID.String() == userID && m.TripID.String() == tripID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	f.memberships = kept
	return removed, nil
}

func (f *fakeMembershipRepo) UpdateRole(_ context.Context, userID, tripID, role string) error {
	for _, m := range f.memberships {
		if m.UserID.String() == userID && m.TripID.String() == tripID {
			m.Role = role
		}
	}
	return nil
}

func (f *fakeMembershipRepo) ListByTrip(_ context.Context, tripID string) ([]db_models.TripMembership, error) {
	var out []db_models.TripMembership
	for _, m := range f.memberships {
		if m.TripID.String() != tripID {
			continue
		}
		row := *m
		if f.users != nil {
			if user, ok := f.users.users[m.UserID]; ok {
				row.User = *user
			}
		}
		out = append(out, row)
	}
	return out, nil
}

type fakeItineraryRepo struct {
	days       map[uuid.UUID]*db_models.TripDay
	activities map[uuid.UUID]*db_models.Activity
	seq        int64
}

func newFakeItineraryRepo() *fakeItineraryRepo {
	return &fakeItineraryRepo{
		days:       map[uuid.UUID]*db_models.TripDay{},
		activities: map[uuid.UUID]*db_models.Activity{},
	}
}

func (f *fakeItineraryRepo) addDay(tripID uuid.UUID, date time.Time) *db_models.TripDay {
	day := &db_models.TripDay{TripID: tripID, Date: date}
	day.ID = uuid.New()
	f.seq++
	day.CreatedAt = f.seq
	f.days[day.ID] = day
	return day
}

func (f *fakeItineraryRepo) daysOf(tripID string) []*db_models.TripDay {
	var out []*db_models.TripDay
	for _, day := range f.days {
		if day.TripID.String() == tripID {
			out = append(out, day)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date.Before(out[b].Date) })
	return out
}

func sortedActivities(in []db_models.Activity) []db_models.Activity {
	sort.Slice(in, func(a, b int) bool {
		left, right := in[a].StartTime, in[b].StartTime
		switch {
		case left == nil && right != nil:
			return true
		case left != nil && right == nil:
			return false
		case left != nil && right != nil && *left != *right:
			return *left < *right
		}
		return in[a].CreatedAt < in[b].CreatedAt
	})
	return in
}

func (f *fakeItineraryRepo) ListDays(_ context.Context, tripID string) ([]db_models.TripDay, error) {
	var out []db_models.TripDay
	for _, day := range f.daysOf(tripID) {
		row := *day
		acts, _ := f.ListActivitiesForDay(context.Background(), day.ID.String())
		row.Activities = acts
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeItineraryRepo) InsertDay(_ context.Context, day *db_models.TripDay) error {
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}
	f.seq++
	day.CreatedAt = f.seq
	f.days[day.ID] = day
	return nil
}

func (f *fakeItineraryRepo) FindDay(_ context.Context, dayID string) (*db_models.TripDay, error) {
	parsed, err := uuid.Parse(dayID)
	if err != nil {
		return nil, nil
	}
	day, ok := f.days[parsed]
	if !ok {
		return nil, nil
	}
	return day, nil
}

func (f *fakeItineraryRepo) UpdateDay(_ context.Context, day *db_models.TripDay) error {
	f.days[day.ID] = day
	return nil
}

func (f *fakeItineraryRepo) DeleteDayCascade(_ context.Context, dayID string) ([]string, error) {
	parsed, err := uuid.Parse(dayID)
	if err != nil {
		return nil, utils.ErrDayNotFound
	}
	if _, ok := f.days[parsed]; !ok {
		return nil, utils.ErrDayNotFound
	}

	var refs []string
	for id, activity := range f.activities {
		if activity.TripDayID == parsed {
			refs = append(refs, activity.Images...)
			delete(f.activities, id)
		}
	}
	delete(f.days, parsed)
	return refs, nil
}

func (f *fakeItineraryRepo) LastDay(_ context.Context, tripID string) (*db_models.TripDay, error) {
	days := f.daysOf(tripID)
	if len(days) == 0 {
		return nil, nil
	}
	return days[len(days)-1], nil
}

func (f *fakeItineraryRepo) FirstDay(_ context.Context, tripID string) (*db_models.TripDay, error) {
	days := f.daysOf(tripID)
	if len(days) == 0 {
		return nil, nil
	}
	return days[0], nil
}

func (f *fakeItineraryRepo) FindActivity(_ context.Context, id string) (*db_models.Activity, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	activity, ok := f.activities[parsed]
	if !ok {
		return nil, nil
	}
	return activity, nil
}

func (f *fakeItineraryRepo) ListActivitiesForDay(_ context.Context, dayID string) ([]db_models.Activity, error) {
	var out []db_models.Activity
	for _, activity := range f.activities {
		if activity.TripDayID.String() == dayID {
			out = append(out, *activity)
		}
	}
	return sortedActivities(out), nil
}

func (f *fakeItineraryRepo) InsertActivity(_ context.Context, activity *db_models.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	f.seq++
	activity.CreatedAt = f.seq
	f.activities[activity.ID] = activity
	return nil
}

func (f *fakeItineraryRepo) UpdateActivity(_ context.Context, activity *db_models.Activity) error {
	f.activities[activity.ID] = activity
	return nil
}

func (f *fakeItineraryRepo) DeleteActivity(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrActivityNotFound
	}
	if _, ok := f.activities[parsed]; !ok {
		return utils.ErrActivityNotFound
	}
	delete(f.activities, parsed)
	return nil
}

type fakeTripRepo struct {
	trips       map[uuid.UUID]*db_models.Trip
	memberships *fakeMembershipRepo
	itinerary   *fakeItineraryRepo
}

func newFakeTripRepo(memberships *fakeMembershipRepo, itinerary *fakeItineraryRepo) *fakeTripRepo {
	return &fakeTripRepo{
		trips:       map[uuid.UUID]*db_models.Trip{},
		memberships: memberships,
		itinerary:   itinerary,
	}
}

func (f *fakeTripRepo) add(name string, isPublic bool) *db_models.Trip {
	trip := &db_models.Trip{Name: name, IsPublic: isPublic}
	trip.ID = uuid.New()
	f.trips[trip.ID] = trip
	return trip
}

func (f *fakeTripRepo) CreateWithMembers(_ context.Context, trip *db_models.Trip, ownerID uuid.UUID, memberIDs []uuid.UUID, dayDates []time.Time) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	f.trips[trip.ID] = trip
	f.memberships.add(trip.ID, ownerID, db_models.RoleAdmin)
	for _, memberID := range memberIDs {
		f.memberships.add(trip.ID, memberID, db_models.RoleMember)
	}
	for _, date := range dayDates {
		f.itinerary.addDay(trip.ID, date)
	}
	return nil
}

func (f *fakeTripRepo) FindByID(_ context.Context, id string) (*db_models.Trip, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	trip, ok := f.trips[parsed]
	if !ok {
		return nil, nil
	}
	return trip, nil
}

func (f *fakeTripRepo) Update(_ context.Context, trip *db_models.Trip) error {
	f.trips[trip.ID] = trip
	return nil
}

func (f *fakeTripRepo) DeleteCascade(_ context.Context, tripID string) ([]string, error) {
	parsed, err := uuid.Parse(tripID)
	if err != nil {
		return nil, utils.ErrTripNotFound
	}
	trip, ok := f.trips[parsed]
	if !ok {
		return nil, utils.ErrTripNotFound
	}

	var refs []string
	if trip.ImageURL != nil && *trip.ImageURL != "" {
		refs = append(refs, *trip.ImageURL)
	}
	for _, day := range f.itinerary.daysOf(tripID) {
		dayRefs, _ := f.itinerary.DeleteDayCascade(context.Background(), day.ID.String())
		refs = append(refs, dayRefs...)
	}
	kept := f.memberships.memberships[:0]
	for _, m := range f.memberships.memberships {
		if m.TripID != parsed {
			kept = append(kept, m)
		}
	}
	f.memberships.memberships = kept
	delete(f.trips, parsed)
	return refs, nil
}

func (f *fakeTripRepo) ShiftDates(_ context.Context, tripID string, deltaDays int, newStart time.Time) error {
	parsed, err := uuid.Parse(tripID)
	if err != nil {
		return utils.ErrTripNotFound
	}
	for _, day := range f.itinerary.days {
		if day.TripID == parsed {
			day.Date = utils.AddDays(day.Date, deltaDays)
		}
	}
	if trip, ok := f.trips[parsed]; ok {
		trip.StartDate = &newStart
	}
	return nil
}

func (f *fakeTripRepo) ListByUser(_ context.Context, userID string) ([]db_models.Trip, error) {
	var out []db_models.Trip
	for _, m := range f.memberships.memberships {
		if m.UserID.String() != userID {
			continue
		}
		if trip, ok := f.trips[m.TripID]; ok {
			out = append(out, *trip)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) ListPublicByUser(_ context.Context, userID string) ([]db_models.Trip, error) {
	var out []db_models.Trip
	for _, m := range f.memberships.memberships {
		if m.UserID.String() != userID {
			continue
		}
		if trip, ok := f.trips[m.TripID]; ok && trip.IsPublic {
			out = append(out, *trip)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) ListPrivateShared(_ context.Context, viewerID, profileID string) ([]db_models.Trip, error) {
	member := func(userID string, tripID uuid.UUID) bool {
		for _, m := range f.memberships.memberships {
			if m.UserID.String() == userID && m.TripID == tripID {
				return true
			}
		}
		return false
	}

	var out []db_models.Trip
	for id, trip := range f.trips {
		if !trip.IsPublic && member(viewerID, id) && member(profileID, id) {
			out = append(out, *trip)
		}
	}
	return out, nil
}

type fakeFriendshipRepo struct {
	edges []*db_models.Friendship
	users *fakeUserRepo
}

func newFakeFriendshipRepo(users *fakeUserRepo) *fakeFriendshipRepo {
	return &fakeFriendshipRepo{users: users}
}

func (f *fakeFriendshipRepo) add(requesterID, recipientID uuid.UUID, status string) *db_models.Friendship {
	edge := &db_models.Friendship{RequesterID: requesterID, RecipientID: recipientID, Status: status}
	edge.ID = uuid.New()
	f.edges = append(f.edges, edge)
	return edge
}

func (f *fakeFriendshipRepo) Insert(_ context.Context, friendship *db_models.Friendship) error {
	for _, edge := range f.edges {
		if edge.RequesterID == friendship.RequesterID && edge.RecipientID == friendship.RecipientID {
			return gorm.ErrDuplicatedKey
		}
	}
	if friendship.ID == uuid.Nil {
		friendship.ID = uuid.New()
	}
	f.edges = append(f.edges, friendship)
	return nil
}

func (f *fakeFriendshipRepo) FindBetween(_ context.Context, userID, otherID string) (*db_models.Friendship, error) {
	for _, edge := range f.edges {
		a, b := edge.RequesterID.String(), edge.RecipientID.String()
		if (a == userID && b == otherID) || (a == otherID && b == userID) {
			return edge, nil
		}
	}
	return nil, nil
}

func (f *fakeFriendshipRepo) FindPending(_ context.Context, recipientID, requesterID string) (*db_models.Friendship, error) {
	for _, edge := range f.edges {
		if edge.RecipientID.String() == recipientID &&
			edge.RequesterID.String() == requesterID &&
			edge.Status == db_models.FriendStatusPending {
			return edge, nil
		}
	}
	return nil, nil
}

func (f *fakeFriendshipRepo) UpdateStatus(_ context.Context, id string, status string) error {
	for _, edge := range f.edges {
		if edge.ID.String() == id {
			edge.Status = status
			return nil
		}
	}
	return fmt.Errorf("friendship %s not found", id)
}

func (f *fakeFriendshipRepo) DeleteBetween(_ context.Context, userID, otherID string) (int64, error) {
	kept := f.edges[:0]
	var removed int64
	for _, edge := range f.edges {
		a, b := edge.RequesterID.String(), edge.RecipientID.String()
		if (a == userID && b == otherID) || (a == otherID && b == userID) {
			removed++
			continue
		}
		kept = append(kept, edge)
	}
	f.edges = kept
	return removed, nil
}

func (f *fakeFriendshipRepo) preload(edge db_models.Friendship) db_models.Friendship {
	if f.users != nil {
		if user, ok := f.users.users[edge.RequesterID]; ok {
			edge.Requester = *user
		}
		if user, ok := f.users.users[edge.RecipientID]; ok {
			edge.Recipient = *user
		}
	}
	return edge
}

func (f *fakeFriendshipRepo) ListAcceptedFor(_ context.Context, userID string) ([]db_models.Friendship, error) {
	var out []db_models.Friendship
	for _, edge := range f.edges {
		if edge.Status != db_models.FriendStatusAccepted {
			continue
		}
		if edge.RequesterID.String() == userID || edge.RecipientID.String() == userID {
			out = append(out, f.preload(*edge))
		}
	}
	return out, nil
}

func (f *fakeFriendshipRepo) ListPendingFor(_ context.Context, recipientID string) ([]db_models.Friendship, error) {
	var out []db_models.Friendship
	for _, edge := range f.edges {
		if edge.Status == db_models.FriendStatusPending && edge.RecipientID.String() == recipientID {
			out = append(out, f.preload(*edge))
		}
	}
	return out, nil
}

func (f *fakeFriendshipRepo) CountAcceptedFor(ctx context.Context, userID string) (int64, error) {
	edges, _ := f.ListAcceptedFor(ctx, userID)
	return int64(len(edges)), nil
}

func (f *fakeFriendshipRepo) CountPendingFor(ctx context.Context, recipientID string) (int64, error) {
	edges, _ := f.ListPendingFor(ctx, recipientID)
	return int64(len(edges)), nil
}

type fakeStore struct {
	saved   map[string][]byte
	deleted []string
	seq     int
	// failOn makes the nth Save call fail, counting from 1.
	failOn int
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string][]byte{}}
}

func (f *fakeStore) Save(data []byte, originalName, area string) (string, error) {
	f.seq++
	if f.failOn != 0 && f.seq == f.failOn {
		return "", fmt.Errorf("write %s: no space left", originalName)
	}
	ref := fmt.Sprintf("/uploads/%d-%s", f.seq, originalName)
	if area != "" {
		ref = fmt.Sprintf("/uploads/%s/%d-%s", area, f.seq, originalName)
	}
	f.saved[ref] = data
	return ref, nil
}

func (f *fakeStore) Delete(ref string) error {
	f.deleted = append(f.deleted, ref)
	delete(f.saved, ref)
	return nil
}
