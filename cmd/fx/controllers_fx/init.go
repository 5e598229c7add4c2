package controllers_fx

import (
	"go.uber.org/fx"

	"flyaway/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewFriendController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewProfileController))
