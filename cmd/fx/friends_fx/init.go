package friends_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"flyaway/internal/repositories"
	"flyaway/internal/services"
)

var Module = fx.Provide(provideFriendshipRepo, provideFriendService)

func provideFriendshipRepo(db *gorm.DB) repositories.FriendshipRepository {
	return repositories.NewFriendshipRepository(db)
}

func provideFriendService(friendshipRepo repositories.FriendshipRepository, userRepo repositories.UserRepository) services.FriendServiceInterface {
	return services.NewFriendService(friendshipRepo, userRepo)
}
