package visibility_fx

import (
	"go.uber.org/fx"

	"flyaway/internal/repositories"
	"flyaway/internal/services"
)

var Module = fx.Provide(provideVisibilityService)

func provideVisibilityService(
	tripRepo repositories.TripRepository,
	membershipRepo repositories.MembershipRepository,
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
) services.VisibilityServiceInterface {
	return services.NewVisibilityService(tripRepo, membershipRepo, friendshipRepo, userRepo)
}
