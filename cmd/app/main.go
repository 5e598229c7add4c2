package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"flyaway/cmd/fx/account_fx"
	"flyaway/cmd/fx/controllers_fx"
	"flyaway/cmd/fx/db_fx"
	"flyaway/cmd/fx/friends_fx"
	"flyaway/cmd/fx/itinerary_fx"
	"flyaway/cmd/fx/trips_fx"
	"flyaway/cmd/fx/uploads_fx"
	"flyaway/cmd/fx/visibility_fx"
	"flyaway/internal/api/controllers"
	"flyaway/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		uploads_fx.Module,
		account_fx.Module,
		friends_fx.Module,
		trips_fx.Module,
		itinerary_fx.Module,
		visibility_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	friendController *controllers.FriendController,
	tripController *controllers.TripController,
	itineraryController *controllers.ItineraryController,
	profileController *controllers.ProfileController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	RegisterRoutes(r, accountController, friendController, tripController, itineraryController, profileController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	friendController *controllers.FriendController,
	tripController *controllers.TripController,
	itineraryController *controllers.ItineraryController,
	profileController *controllers.ProfileController) {

	auth := middleware.JWTAuthMiddleware()

	users := r.Group("/users")
	users.POST("/register", accountController.Register)
	users.POST("/login", accountController.Login)
	users.POST("/google-login", accountController.GoogleLogin)
	users.GET("/me", auth, accountController.GetMe)
	users.PATCH("/me", auth, accountController.UpdateProfile)
	users.POST("/me/avatar", auth, accountController.UploadAvatar)
	users.GET("/:userId/profile", auth, profileController.GetProfile)
	users.GET("/:userId/trips", auth, profileController.GetProfileTrips)

	friends := r.Group("/friends", auth)
	friends.GET("", friendController.List)
	friends.POST("/requests", friendController.SendRequest)
	friends.GET("/requests", friendController.Pending)
	friends.POST("/requests/respond", friendController.Respond)
	friends.DELETE("/:userId", friendController.Remove)

	trips := r.Group("/trips", auth)
	trips.POST("", tripController.Create)
	trips.GET("", tripController.GetAll)
	trips.GET("/:id", tripController.GetOne)
	trips.PUT("/:id", tripController.Update)
	trips.DELETE("/:id", tripController.Delete)
	trips.POST("/:id/image", tripController.UpdateImage)
	trips.PATCH("/:id/start-date", tripController.UpdateStartDate)
	trips.GET("/:id/participants", tripController.GetParticipants)
	trips.POST("/:id/participants", tripController.AddParticipant)
	trips.DELETE("/:id/participants/:userId", tripController.RemoveParticipant)
	trips.PATCH("/:id/participants/:userId/role", tripController.ChangeRole)
	trips.POST("/:id/leave", tripController.Leave)

	itinerary := r.Group("/itinerary", auth)
	itinerary.GET("/trips/:tripId", itineraryController.GetItinerary)
	itinerary.POST("/trips/:tripId/days", itineraryController.CreateDay)
	itinerary.PATCH("/days/:dayId", itineraryController.UpdateDay)
	itinerary.DELETE("/days/:dayId", itineraryController.DeleteDay)
	itinerary.POST("/days/:dayId/activities", itineraryController.CreateActivity)
	itinerary.PATCH("/activities/:id", itineraryController.UpdateActivity)
	itinerary.DELETE("/activities/:id", itineraryController.DeleteActivity)
	itinerary.POST("/activities/:id/images", itineraryController.UploadImages)
	itinerary.DELETE("/activities/:id/images", itineraryController.DeleteImage)
}
