// Package server boots the HomeTech HTTP server: config, store, cache,
// storage, queue workers, then the route table.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hometech/server/app/controllers"
	"github.com/hometech/server/app/jobs"
	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/app/routes"
	"github.com/hometech/server/app/services"
	"github.com/hometech/server/config"
	"github.com/hometech/server/pkg/cache"
	"github.com/hometech/server/pkg/logger"
	"github.com/hometech/server/pkg/payment"
	"github.com/hometech/server/pkg/queue"
	"github.com/hometech/server/pkg/router"
	"github.com/hometech/server/pkg/storage"
)

const (
	workerCount     = 4
	shutdownTimeout = 15 * time.Second
)

// Start runs the server until SIGINT or SIGTERM. An unreachable store is a
// startup failure, not a warning: the process exits instead of serving
// requests it cannot answer.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repositories.Connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background()) //nolint:errcheck

	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	logger.Info("store connected", "database", config.MongoDatabase())

	cache.Connect()
	storage.Connect()

	jobs.RegisterAll()
	queue.UseCollection(store.Collection(repositories.CollFailedJobs))
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, workerCount)

	r := router.New()
	routes.Register(r, buildControllers(store))

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HomeTech server is running", "port", config.AppPort(), "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildControllers wires repositories into services into controllers.
func buildControllers(store *repositories.Store) routes.Controllers {
	users := repositories.NewUserRepository(store)
	categories := repositories.NewCategoryRepository(store)
	products := repositories.NewProductRepository(store)
	bookings := repositories.NewBookingRepository(store)
	payments := repositories.NewPaymentRepository(store)

	notify := jobs.QueueNotifier{}

	authSvc := services.NewAuthService(users)
	userSvc := services.NewUserService(users, products)
	categorySvc := services.NewCategoryService(categories)
	productSvc := services.NewProductService(products)
	bookingSvc := services.NewBookingService(bookings, notify)
	paymentSvc := services.NewPaymentService(payments, bookings, payment.NewStripeGateway(), notify)

	return routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Category: controllers.NewCategoryController(categorySvc, productSvc),
		Product:  controllers.NewProductController(productSvc, userSvc),
		User:     controllers.NewUserController(userSvc),
		Booking:  controllers.NewBookingController(bookingSvc),
		Payment:  controllers.NewPaymentController(paymentSvc),
		Roles:    userSvc.ResolveRole,
	}
}
