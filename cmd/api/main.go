package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
	httpRouter "github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/interfaces/http"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/pkg/config"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting store inventory engine")

	eng := engine.New(engine.Dataset{}, engine.Config{
		DedupWindow:       time.Duration(cfg.Engine.DedupWindowSec) * time.Second,
		PresenceTTL:       time.Duration(cfg.Engine.PresenceTTLSec) * time.Second,
		AutoSweepInterval: time.Duration(cfg.Engine.AutoSweepIntervalSec) * time.Second,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{Engine: eng})

	sweepDone := make(chan struct{})
	go runAutoSweep(eng, cfg.Engine.AutoSweepIntervalSec, log, sweepDone)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")
	close(sweepDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// runAutoSweep drives the externally-scheduled forced zone sweep named in
// §6: every AUTO_SWEEP_INTERVAL_SEC, re-evaluate presence for every
// location on the dashboard, sales or not, so TTL expiry is reflected even
// without new RFID reads.
func runAutoSweep(eng *engine.Engine, intervalSec int, log *logger.Logger, done <-chan struct{}) {
	if intervalSec <= 0 {
		intervalSec = 30
	}
	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case t := <-ticker.C:
			for _, loc := range eng.Dashboard() {
				if _, err := eng.ForceZoneSweep(loc.LocationID, t); err != nil {
					log.Warn().Err(err).Str("locationId", loc.LocationID).Msg("auto sweep failed")
				}
			}
		}
	}
}
