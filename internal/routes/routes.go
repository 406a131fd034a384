package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sharedspace-app/backend/internal/config"
	"github.com/sharedspace-app/backend/internal/handlers"
	"github.com/sharedspace-app/backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	artworkHandler *handlers.ArtworkHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	reportHandler *handlers.ReportHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Artworks (JWT applied per route so public routes stay public)
	artworks := api.Group("/artworks", middleware.JWTProtected(cfg))
	artworks.Get("/", artworkHandler.ListAll)
	artworks.Get("/mine", artworkHandler.ListMine)
	artworks.Get("/friends", artworkHandler.ListFriends)
	artworks.Post("/byOwner", artworkHandler.ListByOwner)
	artworks.Post("/", artworkHandler.Create)
	artworks.Delete("/batch", artworkHandler.DeleteBatch)
	artworks.Get("/:id", artworkHandler.GetByID)
	artworks.Put("/:id", artworkHandler.Update)
	artworks.Delete("/:id", artworkHandler.Delete)
	artworks.Post("/:id/vote", artworkHandler.CastVote)

	// Leaderboards
	leaderboard := api.Group("/leaderboard", middleware.JWTProtected(cfg))
	leaderboard.Get("/artworks", leaderboardHandler.RankArtworks)
	leaderboard.Get("/artists", leaderboardHandler.RankArtists)
	leaderboard.Post("/artworkRank", leaderboardHandler.ArtworkRank)
	leaderboard.Get("/topPublicArtworks", leaderboardHandler.TopPublicArtworks)
	leaderboard.Get("/streaks", leaderboardHandler.StreakLeaders)

	// Creating a report only needs a logged-in user
	api.Post("/reports/create", middleware.JWTProtected(cfg), reportHandler.Create)

	// Report review is admin-only
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/reports", reportHandler.List)
	admin.Get("/reports/:id", reportHandler.GetByID)
	admin.Put("/reports/:id/status", reportHandler.UpdateStatus)
	admin.Delete("/reports/:id", reportHandler.Delete)
	admin.Post("/reports/action/:id", reportHandler.HandleAction)
	admin.Post("/artworks/:id/rescore", artworkHandler.Rescore)

	// Notifications
	notifications := api.Group("/notifications", middleware.JWTProtected(cfg))
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)
}
