package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/process-hub/internal/application/auth"
	"github.com/jhoicas/process-hub/internal/application/ports"
	"github.com/jhoicas/process-hub/internal/application/process"
	"github.com/jhoicas/process-hub/internal/application/tracking"
	"github.com/jhoicas/process-hub/internal/application/usecase"
	"github.com/jhoicas/process-hub/internal/domain/repository"
	domaintracking "github.com/jhoicas/process-hub/internal/domain/tracking"
	"github.com/jhoicas/process-hub/internal/infrastructure/airtable"
	"github.com/jhoicas/process-hub/internal/infrastructure/memory"
	"github.com/jhoicas/process-hub/internal/infrastructure/mongo"
	infrapdf "github.com/jhoicas/process-hub/internal/infrastructure/pdf"
	"github.com/jhoicas/process-hub/internal/infrastructure/postgres"
	"github.com/jhoicas/process-hub/internal/infrastructure/scheduler"
	"github.com/jhoicas/process-hub/internal/infrastructure/seedfile"
	httpRouter "github.com/jhoicas/process-hub/internal/interfaces/http"
	"github.com/jhoicas/process-hub/pkg/config"
	"github.com/jhoicas/process-hub/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repositories puertos de persistencia del driver elegido.
type repositories struct {
	categories repository.CategoryRepository
	phases     repository.PhaseRepository
	steps      repository.StepRepository
	clients    repository.ClientRepository
	timeLogs   repository.TimeLogRepository
	users      repository.UserRepository
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("conexión al almacén")
	}
	defer repos.close()

	catalogUC := process.NewCatalogUseCase(repos.categories, repos.phases, repos.steps)
	clientUC := usecase.NewClientUseCase(repos.clients)
	timeUC := tracking.NewTimeTrackingUseCase(repos.timeLogs, repos.clients, infrapdf.NewMarotoReportGenerator(cfg.App.Name))
	sessions := tracking.NewSessionManager(timeUC, domaintracking.SystemClock{})
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	var source ports.TabularSource
	if cfg.Airtable.Configured() {
		source = airtable.NewClient(cfg.Airtable.APIURL, cfg.Airtable.Token, cfg.Airtable.BaseID, cfg.Airtable.TableID)
	} else {
		log.Warn().Msg("Airtable sin credenciales; /api/airtable responderá 500")
	}
	var cacheTTL time.Duration
	if cfg.Airtable.RefreshCron != "" {
		if cacheTTL, err = scheduler.Interval(cfg.Airtable.RefreshCron, time.Now()); err != nil {
			log.Fatal().Err(err).Msg("AIRTABLE_REFRESH_CRON")
		}
	}
	recordsUC := usecase.NewRecordsUseCase(source, cacheTTL)

	jobs := scheduler.New()
	if recordsUC.Configured() && cfg.Airtable.RefreshCron != "" {
		if err := jobs.Add("airtable-refresh", cfg.Airtable.RefreshCron, recordsUC.Refresh); err != nil {
			log.Fatal().Err(err).Msg("programar refresco de Airtable")
		}
	}
	if cfg.Sessions.SweepCron != "" {
		maxIdle := time.Duration(cfg.Sessions.IdleMinutes) * time.Minute
		err := jobs.Add("session-sweep", cfg.Sessions.SweepCron, func(ctx context.Context) error {
			sessions.SweepIdle(ctx, maxIdle)
			return nil
		})
		if err != nil {
			log.Fatal().Err(err).Msg("programar barrido de sesiones")
		}
	}
	jobs.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs (requiere haber generado docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Process Hub API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   cfg.App.Name,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:       catalogUC,
		ClientUC:        clientUC,
		TimeUC:          timeUC,
		Sessions:        sessions,
		RecordsUC:       recordsUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
		StoreConfigured: cfg.StoreConfigured(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	jobs.Stop()

	// Lo acumulado en cronómetros abiertos se registra antes de salir.
	sessions.CloseAll(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}

// openStore abre el driver configurado. Sin credenciales devuelve un almacén vacío en memoria:
// las rutas /api responden 500 "Database not configured" y el proceso sigue vivo.
func openStore(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if !cfg.StoreConfigured() {
		return memoryRepositories(memory.NewStore()), nil
	}
	switch cfg.Store.Driver {
	case config.StoreMongo:
		store, err := mongo.NewStore(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return &repositories{
			categories: store.Categories(),
			phases:     store.Phases(),
			steps:      store.Steps(),
			clients:    store.Clients(),
			timeLogs:   store.TimeLogs(),
			users:      store.Users(),
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = store.Close(closeCtx)
			},
		}, nil
	case config.StoreMemory:
		store := memory.NewStore()
		if cfg.Store.SeedFile != "" {
			f, err := seedfile.Load(cfg.Store.SeedFile)
			if err != nil {
				return nil, err
			}
			store.Load(f)
		}
		return memoryRepositories(store), nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &repositories{
			categories: postgres.NewCategoryRepository(pool),
			phases:     postgres.NewPhaseRepository(pool),
			steps:      postgres.NewStepRepository(pool),
			clients:    postgres.NewClientRepository(pool),
			timeLogs:   postgres.NewTimeLogRepository(pool),
			users:      postgres.NewUserRepository(pool),
			close:      pool.Close,
		}, nil
	}
}

func memoryRepositories(store *memory.Store) *repositories {
	return &repositories{
		categories: store.Categories(),
		phases:     store.Phases(),
		steps:      store.Steps(),
		clients:    store.Clients(),
		timeLogs:   store.TimeLogs(),
		users:      store.Users(),
		close:      func() {},
	}
}
