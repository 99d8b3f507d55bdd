package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/puttputt/internal/api"
	"github.com/playmatatu/puttputt/internal/auth"
	"github.com/playmatatu/puttputt/internal/config"
	"github.com/playmatatu/puttputt/internal/course"
	"github.com/playmatatu/puttputt/internal/database"
	"github.com/playmatatu/puttputt/internal/logger"
	"github.com/playmatatu/puttputt/internal/migrations"
	"github.com/playmatatu/puttputt/internal/physics"
	"github.com/playmatatu/puttputt/internal/redis"
	"github.com/playmatatu/puttputt/internal/round"
	"github.com/playmatatu/puttputt/internal/ws"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logger.New("puttputt", cfg.Environment)

	err := run(cfg, log)
	if err != nil {
		log.Errorw("server stopped", "error", err)
	}
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func loadCatalog(cfg *config.Config, radius float64) (*course.Catalog, error) {
	def, err := course.Default(radius)
	if err != nil {
		return nil, err
	}
	courses := []*course.Course{def}
	if cfg.CourseFile != "" {
		extra, err := course.LoadFile(cfg.CourseFile, radius)
		if err != nil {
			return nil, err
		}
		courses = append(courses, extra)
	}
	return course.NewCatalog(courses...)
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	physCfg, err := cfg.PhysicsConfig()
	if err != nil {
		return err
	}
	engine := physics.NewEngine(physCfg)

	catalog, err := loadCatalog(cfg, physCfg.BallRadius)
	if err != nil {
		return err
	}
	for _, s := range catalog.List() {
		log.Infow("course loaded", "course", s.ID, "holes", len(s.Holes), "fingerprint", s.Fingerprint)
	}

	hub := ws.NewHub(log.Named("ws"))
	manager := round.NewManager(catalog, engine, round.Options{
		MaxHitSpeed: cfg.MaxHitSpeed,
		RoundTTL:    time.Duration(cfg.RoundTTLMinutes) * time.Minute,
	}, log.Named("round"))

	// History and snapshots are optional; play continues without them.
	if db, err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
		log.Warnw("database unavailable, round history disabled", "error", err)
	} else {
		defer db.Close()
		if cfg.MigrateOnStart {
			if err := migrations.Run(cfg.DatabaseURL, log.Named("migrate")); err != nil {
				return err
			}
		}
		manager.WithRecorder(round.NewSQLRecorder(db))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(ctx) })

	if rdb, err := redis.Connect(ctx, cfg.RedisURL); err != nil {
		log.Warnw("redis unavailable, publishing updates locally", "error", err)
		manager.WithPublisher(hub)
	} else {
		defer rdb.Close()
		store := round.NewRedisStore(rdb, time.Duration(cfg.RoundTTLMinutes)*time.Minute)
		manager.WithStore(store).WithPublisher(store)
		g.Go(func() error { return hub.Subscribe(ctx, rdb) })
	}

	g.Go(func() error {
		rate := cfg.TickRateHz
		if rate <= 0 {
			rate = 60
		}
		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()
		log.Infow("simulation loop started", "tick_rate_hz", rate)

		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				manager.Advance(ctx, now)
			}
		}
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Environment != "production" {
		router.Use(gin.Logger())
	}

	api.SetupRoutes(router, api.Deps{
		Config:  cfg,
		Catalog: catalog,
		Rounds:  manager,
		Issuer:  auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.RoundTokenTTLMinutes)*time.Minute),
		Socket:  ws.NewHandler(hub, manager),
		Log:     log.Named("api"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Infow("starting putt-putt server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Infow("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
