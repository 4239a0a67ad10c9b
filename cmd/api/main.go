package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lifeline/lifeline-api/internal/config"
	"github.com/lifeline/lifeline-api/internal/crypto"
	"github.com/lifeline/lifeline-api/internal/handler"
	"github.com/lifeline/lifeline-api/internal/repository"
	"github.com/lifeline/lifeline-api/internal/service"
)

const storeCloseTimeout = 5 * time.Second

type stores struct {
	users    service.UserStore
	profiles service.ProfileStore
	cards    service.CardStore
	products service.ProductStore
	close    func(context.Context) error
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	st, err := openStores(cfg)
	if err != nil {
		slog.Error("store initialisation failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	tokens := crypto.NewTokenService(cfg.JWTSecret)
	hasher := crypto.NewPasswordHasher(cfg.BcryptCost)

	router := handler.NewRouter(handler.Deps{
		Auth:     service.NewAuthService(st.users, tokens, hasher),
		Cards:    service.NewCardService(st.cards),
		Profiles: service.NewProfileService(st.profiles),
		Products: service.NewProductService(st.products),
		Tokens:   tokens,
		Users:    st.users,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}
	if err := closeStores(st); err != nil {
		slog.Error("closing store", "error", err)
	}

	slog.Info("server stopped")
}

// closeStores disconnects the store with its own deadline, independent of the
// one spent on draining HTTP connections.
func closeStores(st *stores) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeCloseTimeout)
	defer cancel()
	return st.close(ctx)
}

func openStores(cfg config.Config) (*stores, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.StoreDriver == config.DriverMySQL {
		db, err := repository.NewDB(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("connected to mysql")
		return &stores{
			users:    repository.NewUserRepository(db),
			profiles: repository.NewProfileRepository(db),
			cards:    repository.NewCardRepository(db),
			products: repository.NewProductRepository(db),
			close:    func(context.Context) error { return db.Close() },
		}, nil
	}

	client, err := repository.NewMongo(cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	slog.Info("connected to mongodb", "database", cfg.MongoDatabase)
	return &stores{
		users:    repository.NewMongoUserRepository(db),
		profiles: repository.NewMongoProfileRepository(db),
		cards:    repository.NewMongoCardRepository(db),
		products: repository.NewMongoProductRepository(db),
		close:    client.Disconnect,
	}, nil
}
