package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"flyaway/internal/repositories"
	"flyaway/internal/services"
	"flyaway/pkg/uploads"
)

var Module = fx.Provide(provideItineraryRepo, provideItineraryService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(
	itineraryRepo repositories.ItineraryRepository,
	membershipRepo repositories.MembershipRepository,
	files uploads.Store,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(itineraryRepo, membershipRepo, files)
}
