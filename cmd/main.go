package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/jobradar/jobradar/internal/api/v1/handlers"
	"github.com/jobradar/jobradar/internal/api/v1/routes"
	"github.com/jobradar/jobradar/internal/cache"
	"github.com/jobradar/jobradar/internal/config"
	"github.com/jobradar/jobradar/internal/db"
	"github.com/jobradar/jobradar/internal/db/repos"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/scraper"
	"github.com/jobradar/jobradar/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger.Initialize()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.New(cfg.DB)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	// Redis is the fast-read layer only; without it listings fall back to an
	// in-process store and the durable database stays authoritative.
	var store cache.Store
	if client, err := cache.NewRedisClient(ctx, cfg.RedisURL); err != nil {
		logger.Warnf("redis unavailable, using in-process cache: %v", err)
		store = cache.NewMemoryStore()
	} else {
		store = cache.NewRedisStore(client)
	}

	jobRepo := repos.NewJobRepository(gdb)
	companyRepo := repos.NewCompanyRepository(gdb)
	boardRepo := repos.NewJobBoardRepository(gdb)
	pairRepo := repos.NewPairRepository(gdb)
	cronRepo := repos.NewCronConfigRepository(gdb)

	scrapers := scraper.NewDefaultRegistry(scraper.NewClient(time.Duration(cfg.ScrapeTimeout) * time.Millisecond))

	aggregator := services.NewAggregator(jobRepo, companyRepo, boardRepo, pairRepo, scrapers, store,
		services.AggregatorOptions{
			Workers:     cfg.ScrapeWorkers,
			PairTimeout: time.Duration(cfg.ScrapeTimeout) * time.Millisecond,
		})
	jobsService := services.NewJobsService(jobRepo, store)
	registryService := services.NewRegistryService(boardRepo, companyRepo, pairRepo, jobRepo)
	scheduleService := services.NewScheduleService(cronRepo, cfg.CronExpression, func() {
		if _, err := aggregator.RunAll(context.Background()); err != nil {
			logger.Errorf("scheduled run failed: %v", err)
		}
	})

	if err := registryService.SeedDefaultBoards(ctx); err != nil {
		logger.Fatalf("failed to seed job boards: %v", err)
	}
	if err := scheduleService.Start(ctx); err != nil {
		logger.Fatalf("failed to start scheduler: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "jobradar",
		ErrorHandler: customErrorHandler,
	})
	app.Use(fiberlogger.New())
	routes.RegisterRoutes(app,
		handlers.NewJobHandler(jobsService),
		handlers.NewScrapeHandler(aggregator, registryService),
		handlers.NewRegistryHandler(registryService),
		handlers.NewScheduleHandler(scheduleService),
	)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatalf("server stopped: %v", err)
		}
	}()
	logger.Infof("listening on :%s", cfg.Port)

	<-ctx.Done()
	logger.Infof("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Errorf("server shutdown failed: %v", err)
	}
	// Let an in-flight scheduled run finish before the process exits
	<-scheduleService.Stop().Done()
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
