package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/drew18-it/watchbuy/internal/auth"
	"github.com/drew18-it/watchbuy/internal/eventengine"
	"github.com/drew18-it/watchbuy/internal/features/admin"
	"github.com/drew18-it/watchbuy/internal/features/cart"
	"github.com/drew18-it/watchbuy/internal/features/category"
	"github.com/drew18-it/watchbuy/internal/features/order"
	"github.com/drew18-it/watchbuy/internal/features/product"
	"github.com/drew18-it/watchbuy/internal/features/review"
	"github.com/drew18-it/watchbuy/internal/features/session"
	"github.com/drew18-it/watchbuy/internal/features/user"
	"github.com/drew18-it/watchbuy/internal/middlewares"
	"github.com/drew18-it/watchbuy/internal/notification"
	"github.com/drew18-it/watchbuy/internal/receipt"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr         string
	DB           *sql.DB
	TokenManager *auth.TokenService
	Mailer       *notification.Mailer
	Receipts     *receipt.Renderer
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines within individual routes to finish before shutting down the server.

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	router := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /orders/1/ -> /orders/1
	// this middleware should be applied to all routes
	// to ensure that the url is correctly formatted
	router.Use(chimiddleware.StripSlashes)

	s.prep()

	router.Mount("/api", s.apiRouter())

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to graceful shutdown server.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			log.Printf("server started and is listening at port %s...\n", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen shutdown signals
			println()
			log.Println("hold and wait, server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			log.Println("server has stopped receiving new requests")
			log.Println("waiting for all pending requests to finish....")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		log.Fatal(err.Error())
	}
	log.Println("all pending requests completed!")

	log.Println("waiting for all internal pending go routines....")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	log.Println("all internal go routines are done")

	log.Println("closing other resources...")
	if err := s.DB.Close(); err != nil {
		log.Println("server failed to close db for shutdown")
	}

	log.Println("server has been gracefully shutdown")
	os.Exit(0)
}

// prep prepares server dependencies needed for server to function
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)
}

func (s *server) apiRouter() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	middleware := middlewares.NewMiddleware(
		s.TokenManager,
	)

	// user + session features
	sessionStore := session.NewStore(s.DB)

	userStore := user.NewStore(s.DB)
	userService := user.NewService(
		userStore,
		sessionStore,
		s.TokenManager,
	)
	userHandler := user.NewHandler(
		userService,
		middleware,
		s.TokenManager,
	)
	userHandler.RegisterRoutes(r)

	// category feature
	categoryStore := category.NewStore(s.DB)
	categoryService := category.NewService(categoryStore)
	categoryHandler := category.NewHandler(
		categoryService,
		middleware,
	)
	categoryHandler.RegisterRoutes(r)

	// product feature, carries catalog search as well
	productStore := product.NewStore(s.DB)
	productService := product.NewService(productStore)
	productHandler := product.NewHandler(
		productService,
		middleware,
	)
	productHandler.RegisterRoutes(r)

	// cart feature
	cartStore := cart.NewStore(s.DB)
	cartService := cart.NewService(cartStore)
	cartHandler := cart.NewHandler(
		cartService,
		middleware,
	)
	cartHandler.RegisterRoutes(r)

	// order feature and its event subscriber for receipts and emails
	orderStore := order.NewStore(s.DB)
	orderService := order.NewService(
		orderStore,
		s.eventEngine,
	)
	orderHandler := order.NewHandler(
		orderService,
		middleware,
	)
	orderHandler.RegisterRoutes(r)

	order.NewHandlerEvents(&order.HandlerEventsConfig{
		DoneCh:        s.doneCh,
		InternalSrvWG: s.internalSrvWG,
		EventEngine:   s.eventEngine,
		Store:         orderStore,
		Mailer:        s.Mailer,
		Receipts:      s.Receipts,
	})

	// review feature
	reviewStore := review.NewStore(s.DB)
	reviewService := review.NewService(reviewStore)
	reviewHandler := review.NewHandler(
		reviewService,
		middleware,
	)
	reviewHandler.RegisterRoutes(r)

	// admin feature
	adminStore := admin.NewStore(s.DB)
	adminService := admin.NewService(adminStore)
	adminHandler := admin.NewHandler(
		adminService,
		middleware,
	)
	adminHandler.RegisterRoutes(r)

	return r
}
