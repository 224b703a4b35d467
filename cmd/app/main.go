package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/wichananm65/gadget-shop-dashboard/internal/api"
	"github.com/wichananm65/gadget-shop-dashboard/internal/auth"
	"github.com/wichananm65/gadget-shop-dashboard/internal/catalog"
	"github.com/wichananm65/gadget-shop-dashboard/internal/config"
	"github.com/wichananm65/gadget-shop-dashboard/internal/dashboard"
	"github.com/wichananm65/gadget-shop-dashboard/internal/token"
)

// main wires dependencies (dependency injection) and starts the dashboard.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	tokens, err := token.NewFileStore(cfg.TokenDir)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open token store")
	}

	client := api.NewClient(cfg.APIBaseURL, tokens, log)
	authStore := auth.NewStore(client, tokens, log)
	catalogStore := catalog.NewStore(client, log)
	catalogStore.Load(catalog.SeedProducts(), catalog.SeedCategories())

	// restore the session from a persisted token before serving anything
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authStore.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("session restore failed")
	}
	cancel()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(log))

	handler := dashboard.NewHandler(authStore, catalogStore, log)
	handler.RegisterPublicRoutes(app)
	app.Use(handler.RequireSession)
	handler.RegisterProtectedRoutes(app)

	log.Info().Str("addr", cfg.Addr).Str("backend", cfg.APIBaseURL).Msg("starting dashboard")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}
