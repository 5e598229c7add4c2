package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"flyaway/internal/repositories"
	"flyaway/internal/services"
	"flyaway/pkg/uploads"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(userRepo repositories.UserRepository, files uploads.Store) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, files)
}
