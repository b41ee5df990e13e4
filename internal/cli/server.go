package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"planty-quiz-service/internal/app"
	"planty-quiz-service/internal/config"
	"planty-quiz-service/internal/domain"
	"planty-quiz-service/internal/infra/memory"
	pgloader "planty-quiz-service/internal/infra/postgres"
	redisinfra "planty-quiz-service/internal/infra/redis"
	"planty-quiz-service/internal/logger"
	transport "planty-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port, catalogPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port, *catalogPath)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag, catalogFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		log.Info("database migrations applied")
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	catalogFile := catalogFlag
	if catalogFile == "" {
		catalogFile = cfg.Catalog.Path
	}
	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(sampleCatalog())
	switch {
	case pool != nil:
		loader = pgloader.NewCatalogLoader(pool)
	case catalogFile != "":
		loader = memory.NewFileCatalogLoader(catalogFile)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalogRepo app.CatalogRepository
	if redisClient != nil {
		catalogRepo = redisinfra.NewCatalogRepository(redisClient, loader, imageOverrides(), catalogTTL)
	} else {
		catalogRepo = memory.NewCatalogRepository(loader, imageOverrides(), catalogTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}
	service := app.NewQuizService(store, catalogRepo)
	wsHandler := transport.NewWSHandler(service, log)
	catalogHandler := transport.NewCatalogHandler(service, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.Handle("/plants", catalogHandler)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting planty quiz service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// imageOverrides maps plant IDs to curated image filenames. Plants not
// listed keep whatever image reference the catalog source carries.
func imageOverrides() map[string]string {
	return map[string]string{
		"cylindrical-snake-plant": "01_cylindrical_snake_plant.jpg",
		"chinese-money-plant":     "14_chinese_money_plant.jpg",
		"swiss-cheese-plant":      "27_swiss_cheese_plant.jpg",
		"marble-queen-pothos":     "31_marble_queen_pothos.jpg",
		"boston-fern":             "35_boston_fern.jpg",
		"cast-iron-plant":         "42_cast_iron_plant.jpg",
		"english-ivy":             "44_english_ivy.jpg",
	}
}

// sampleCatalog provides a minimal plant set for demos when neither Postgres
// nor a catalog file is configured.
func sampleCatalog() []domain.PlantRecord {
	return []domain.PlantRecord{
		{
			ID:         "chinese-money-plant",
			CommonName: "Chinese Money Plant",
			LatinName:  "Pilea peperomioides",
			Type:       "Foliage",
			Soil:       "Well-draining potting mix",
			Light:      "Bright, indirect light",
			Water:      "Water when the top inch of soil is dry",
			Donts:      "Avoid direct midday sun\nDo not let it sit in water",
			Image:      "14_chinese_money_plant.jpg",
		},
		{
			ID:         "boston-fern",
			CommonName: "Boston Fern",
			LatinName:  "Nephrolepis exaltata",
			Type:       "Fern",
			Soil:       "Peat-based mix, kept moist",
			Light:      "Indirect light, some shade",
			Water:      "Keep soil consistently damp",
			Donts:      "Avoid dry air and radiators",
			Image:      "35_boston_fern.jpg",
		},
		{
			ID:         "cast-iron-plant",
			CommonName: "Cast Iron Plant",
			LatinName:  "Aspidistra elatior",
			Type:       "Foliage",
			Soil:       "Any good potting soil",
			Light:      "Tolerates deep shade",
			Water:      "Let soil dry between waterings",
			Donts:      "Avoid repotting too often",
			Image:      "42_cast_iron_plant.jpg",
		},
		{
			ID:         "english-ivy",
			CommonName: "English Ivy",
			LatinName:  "Hedera helix",
			Type:       "Trailing",
			Soil:       "Standard mix with perlite",
			Light:      "Bright light, no direct sun",
			Water:      "Water moderately, mist often",
			Donts:      "Avoid warm dry rooms",
			Image:      "44_english_ivy.jpg",
		},
	}
}
