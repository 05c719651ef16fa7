package main

import (
	"context"
	"database/sql"
	"errors"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	v10validator "github.com/go-playground/validator/v10"
	"github.com/ivanpodgorny/sprayweb/internal/client"
	"github.com/ivanpodgorny/sprayweb/internal/config"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	"github.com/ivanpodgorny/sprayweb/internal/handler"
	"github.com/ivanpodgorny/sprayweb/internal/logger"
	"github.com/ivanpodgorny/sprayweb/internal/lunar"
	"github.com/ivanpodgorny/sprayweb/internal/middleware"
	"github.com/ivanpodgorny/sprayweb/internal/migrations"
	"github.com/ivanpodgorny/sprayweb/internal/repository"
	"github.com/ivanpodgorny/sprayweb/internal/security"
	"github.com/ivanpodgorny/sprayweb/internal/service"
	"github.com/ivanpodgorny/sprayweb/internal/validator"
	"github.com/ivanpodgorny/sprayweb/internal/view"
	"github.com/ivanpodgorny/sprayweb/internal/worker"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"log"
	"net/http"
	"sync"
	"time"
	_ "time/tzdata"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	if err := Execute(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func Execute() error {
	cfg, err := config.NewBuilder().LoadDotEnv().LoadFlags().LoadEnv().Build()
	if err != nil {
		return err
	}

	l := logger.New(cfg.Debug())
	defer func() {
		_ = l.Sync()
	}()

	if cfg.SessionKey() == "" {
		l.Warn("SESSION_KEY is not set, session cookies are signed with an empty key")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURI())
	if err != nil {
		return err
	}

	defer func(db *sql.DB) {
		err = db.Close()
	}(db)

	if err := migrations.Up(db); err != nil {
		return err
	}

	validationEngine := v10validator.New()
	if err := validator.Register(validationEngine); err != nil {
		return err
	}

	renderer, err := view.New()
	if err != nil {
		return err
	}

	var (
		ctx, cancel = context.WithCancel(context.Background())
		r           = chi.NewRouter()
		v           = validator.New(validationEngine)
		sr          = repository.NewSession(db)
		sm          = security.NewSessionManager(security.NewCookieSigner(cfg.SessionKey()), sr)
		wg          = &sync.WaitGroup{}
		sw          = worker.NewSweeper(sr, sessionSweepInterval, wg, l)
		bc          = client.NewBackend(cfg.BackendAddress(), cfg.BackendTimeout())
		bs          = service.NewBoard(bc, lunar.NewConverter(cfg.LunarUTCOffset()), cfg.Location())
		as          = service.NewAssignment(bc, l)
		ws          = service.NewWorkflow(bc)
		ah          = handler.NewAuth(service.NewAuth(bc, cfg.SessionTTL()), sm, renderer, v)
		bh          = handler.NewBoard(bs, renderer)
		sh          = handler.NewAssignment(as, renderer, cfg.Location())
		oh          = handler.NewOrderDetail(ws, bs, renderer)
	)

	defer func() {
		cancel()
		wg.Wait()
	}()

	sw.Do(ctx)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Logger)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", ah.LoginPage)
		r.Post("/login", ah.Login)
		r.Get("/signup", ah.SignupPage)
		r.Post("/signup", ah.Signup)
		r.Get("/oauth/{provider}", ah.OAuth)
		r.Post("/logout", ah.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(sm))

		r.Get("/", ah.Home)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleFarmer))

			r.Get("/booking", bh.Booking)
			r.Get("/farmer/orders", bh.Orders)
		})

		r.Route("/sprayer", func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleSprayer))

			r.Get("/assign-orders", bh.Orders)
			r.Get("/orders/{id}", oh.Show)
			r.Get("/orders/{id}/qr", oh.QRCode)
			r.Post("/orders/{id}/status", oh.UpdateStatus)
			r.Post("/orders/{id}/confirm-payment", oh.ConfirmPayment)
		})

		r.Route("/receptionist", func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleReceptionist))

			r.Get("/dashboard", bh.Orders)
			r.Get("/orders/{id}/sprayers", sh.Sprayers)
			r.Post("/orders/{id}/sprayers/{sprayerID}/assign", sh.Assign)
		})
	})

	l.Info("starting server", zap.String("address", cfg.ServerAddress()))
	err = http.ListenAndServe(cfg.ServerAddress(), r)

	return err
}
