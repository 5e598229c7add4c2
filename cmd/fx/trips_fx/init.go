package trips_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"flyaway/internal/repositories"
	"flyaway/internal/services"
	"flyaway/pkg/uploads"
)

var Module = fx.Provide(provideTripRepo, provideMembershipRepo, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideMembershipRepo(db *gorm.DB) repositories.MembershipRepository {
	return repositories.NewMembershipRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	membershipRepo repositories.MembershipRepository,
	itineraryRepo repositories.ItineraryRepository,
	userRepo repositories.UserRepository,
	files uploads.Store,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, membershipRepo, itineraryRepo, userRepo, files)
}
