package main

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/harborlight/backend/internal/auth"
	"github.com/harborlight/backend/internal/config"
	"github.com/harborlight/backend/internal/db"
	"github.com/harborlight/backend/internal/handlers"
	"github.com/harborlight/backend/internal/middleware"
	"github.com/harborlight/backend/internal/models"
	"github.com/harborlight/backend/internal/ratelimit"
	"github.com/harborlight/backend/internal/services"
	"github.com/harborlight/backend/internal/storage/gormstore"
	"github.com/harborlight/backend/internal/storage/mongostore"
)

func main() {
	cfg := config.Load()

	mongoDB := db.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	pgDB := db.ConnectPostgres(cfg.PostgresDSN)

	// Document-backed stores
	users := mongostore.NewUsers(mongoDB)
	articles := mongostore.NewArticles(mongoDB)
	contact := mongostore.NewContactMessages(mongoDB)
	newsletter := mongostore.NewNewsletterSubscribers(mongoDB)
	donations := mongostore.NewDonations(mongoDB)

	// Relational stores
	stories := gormstore.NewStories(pgDB)
	events := gormstore.NewEvents(pgDB)
	resources := gormstore.NewResources(pgDB)
	tags := gormstore.NewTags(pgDB)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	sessions := auth.NewSessions(cfg.CookieName, cfg.TokenTTL)
	authn := middleware.NewAuthenticator(users, tokens, sessions)
	authSvc := services.NewAuthService(users, tokens)

	if err := authSvc.SeedAdmin(context.Background(), cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), cfg.RateLimit, cfg.RateLimitWindow)

	authHandler := handlers.NewAuthHandler(authSvc, sessions, authn)
	articleHandler := handlers.NewArticleHandler(articles)
	storyHandler := handlers.NewStoryHandler(stories)
	eventHandler := handlers.NewEventHandler(events)
	resourceHandler := handlers.NewResourceHandler(resources)
	tagHandler := handlers.NewTagHandler(tags)
	intakeHandler := handlers.NewIntakeHandler(contact, newsletter, donations)
	adminHandler := handlers.NewAdminHandler(users, authSvc)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowCredentials: true,
	}))

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", limiter.Middleware(), authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", authHandler.Me)

	api.Get("/articles", articleHandler.List)
	api.Get("/articles/:slug", articleHandler.GetBySlug)
	api.Get("/stories", storyHandler.List)
	api.Get("/stories/:slug", storyHandler.GetBySlug)
	api.Get("/events", eventHandler.List)
	api.Get("/events/:id", eventHandler.Get)
	api.Get("/resources", resourceHandler.List)
	api.Get("/tags", tagHandler.List)

	api.Post("/contact", limiter.Middleware(), intakeHandler.SubmitContact)
	api.Post("/newsletter", limiter.Middleware(), intakeHandler.Subscribe)
	api.Post("/donations", intakeHandler.SubmitDonation)

	editors := authn.RequireRoles(models.RoleAdmin, models.RoleEditor)
	admins := authn.RequireRoles(models.RoleAdmin)
	admin := api.Group("/admin")

	admin.Get("/users", admins, adminHandler.ListUsers)
	admin.Post("/users", admins, adminHandler.CreateUser)
	admin.Put("/users/:id", admins, adminHandler.UpdateUser)
	admin.Delete("/users/:id", admins, adminHandler.DeleteUser)

	admin.Get("/articles", editors, articleHandler.AdminList)
	admin.Post("/articles", editors, articleHandler.Create)
	admin.Put("/articles/:id", editors, articleHandler.Update)
	admin.Delete("/articles/:id", editors, articleHandler.Delete)

	admin.Get("/stories", editors, storyHandler.AdminList)
	admin.Post("/stories", editors, storyHandler.Create)
	admin.Put("/stories/:id", editors, storyHandler.Update)
	admin.Delete("/stories/:id", editors, storyHandler.Delete)

	admin.Get("/events", editors, eventHandler.AdminList)
	admin.Post("/events", editors, eventHandler.Create)
	admin.Put("/events/:id", editors, eventHandler.Update)
	admin.Delete("/events/:id", editors, eventHandler.Delete)

	admin.Get("/resources", editors, resourceHandler.AdminList)
	admin.Post("/resources", editors, resourceHandler.Create)
	admin.Put("/resources/:id", editors, resourceHandler.Update)
	admin.Delete("/resources/:id", editors, resourceHandler.Delete)

	admin.Post("/tags", editors, tagHandler.Create)
	admin.Delete("/tags/:id", editors, tagHandler.Delete)

	admin.Get("/contact-messages", admins, intakeHandler.ListContactMessages)
	admin.Put("/contact-messages/:id/read", admins, intakeHandler.MarkContactRead)
	admin.Get("/newsletter-subscribers", admins, intakeHandler.ListSubscribers)
	admin.Get("/donations", admins, intakeHandler.ListDonations)

	log.Fatal(app.Listen(":" + cfg.Port))
}
