package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rentfold/service-core/internal/house"
	houserepo "github.com/rentfold/service-core/internal/house/repo"
	"github.com/rentfold/service-core/internal/rental"
	rentalrepo "github.com/rentfold/service-core/internal/rental/repo"
	"github.com/rentfold/service-core/internal/router"
	"github.com/rentfold/service-core/internal/token"
	"github.com/rentfold/service-core/internal/user"
	userrepo "github.com/rentfold/service-core/internal/user/repo"
	"github.com/rentfold/service-core/pkg/storage"
	"github.com/rentfold/service-core/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting rentfold service-core")

	// open the snapshot store and load the three collections
	cfg := storage.ConfigFromEnv()
	store, err := storage.Open(cfg)
	if err != nil {
		sugar.Fatalf("open storage: %v", err)
	}

	users := userrepo.NewUserRepo(store.Path("users.txt"), cfg.MaxUsers)
	houses := houserepo.NewHouseRepo(store.Path("houses.txt"), cfg.MaxHouses)
	rentals := rentalrepo.NewRentalRepo(store.Path("rentals.txt"), cfg.MaxRentals)

	if err := users.Load(); err != nil {
		sugar.Fatalf("load users: %v", err)
	}
	if err := houses.Load(); err != nil {
		sugar.Fatalf("load houses: %v", err)
	}
	if err := rentals.Load(); err != nil {
		sugar.Fatalf("load rentals: %v", err)
	}
	sugar.Infow("collections loaded",
		"users", users.Count(), "houses", houses.Count(), "rentals", rentals.Count())

	userSvc := user.NewService(users, sugar)
	houseSvc := house.NewService(houses, rentals, sugar)
	rentalSvc := rental.NewService(rentals, houses, sugar)

	// a fresh data dir gets the well-known admin account
	if err := userSvc.EnsureDefaultAdmin(); err != nil {
		sugar.Fatalf("seed default admin: %v", err)
	}

	tokens, err := token.NewService(token.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("init token service: %v", err)
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8452"
	}

	handler := router.RegisterRoutes(sugar, tokens, userSvc, houseSvc, rentalSvc)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	sugar.Infow("service is running; press Ctrl+C to stop", "addr", addr)

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// shutdown http server; every mutation already saved its collection, so
	// there is no separate flush step
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
