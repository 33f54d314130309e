package main

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"medizo/config"
	"medizo/controllers"
	"medizo/middleware"
	"medizo/routes"
	"medizo/seed"
	"medizo/store"
	"medizo/store/memstore"
	"medizo/store/mongostore"
	"medizo/utils"
)

func main() {
	cfg := config.Load()

	var out io.Writer = os.Stdout
	if !cfg.Production() {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	logger := zerolog.New(out).With().Timestamp().Logger()

	utils.JwtKey = []byte(cfg.JWTSecret)
	if cfg.JWTSecret == config.DevJWTSecret {
		logger.Warn().Msg("JWT_SECRET not set, using insecure development secret")
	}

	ctx := context.Background()

	var (
		products store.ProductStore
		orders   store.OrderStore
		users    store.UserStore
		reviews  store.ReviewStore
	)

	if cfg.MongoURI != "" {
		client, err := mongostore.Connect(ctx, cfg.MongoURI, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("MongoDB unavailable, falling back to in-memory stores")
		} else {
			defer func() {
				if err := client.Disconnect(ctx); err != nil {
					logger.Error().Err(err).Msg("disconnect MongoDB")
				}
			}()

			db := client.Database(cfg.MongoDB)
			if err := mongostore.EnsureIndexes(ctx, db); err != nil {
				logger.Fatal().Err(err).Msg("create indexes")
			}

			products = mongostore.NewProductStore(db)
			orders = mongostore.NewOrderStore(db)
			users = mongostore.NewUserStore(db)
			reviews = mongostore.NewReviewStore(db)
		}
	} else {
		logger.Warn().Msg("MONGODB_URI not set, using in-memory stores")
	}

	if products == nil {
		products = memstore.NewProductStore()
		orders = memstore.NewOrderStore()
		users = memstore.NewUserStore()
		reviews = memstore.NewReviewStore()
	}

	if err := seed.Ensure(ctx, products); err != nil {
		logger.Warn().Err(err).Msg("seed catalog")
	}

	emailService := utils.NewEmailService(cfg.SendgridAPIKey, cfg.EmailSender)
	if !emailService.Enabled() {
		logger.Warn().Msg("SendGrid not configured, contact relay disabled")
	}

	authController := controllers.NewAuthController(users, logger)
	adminAuthController := controllers.NewAdminAuthController(users, cfg, logger)
	productController := controllers.NewProductController(products, logger)
	orderController := controllers.NewOrderController(orders, logger)
	reviewController := controllers.NewReviewController(reviews, logger)
	contactController := controllers.NewContactController(emailService, cfg.ContactRecipient, logger)

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))

	routes.RegisterRoutes(
		router,
		authController,
		adminAuthController,
		productController,
		orderController,
		reviewController,
		contactController,
		cfg.PingMessage,
	)

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
