package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/torryt/foos-and-friends-sub002/external/passport"
	"github.com/torryt/foos-and-friends-sub002/internal/config"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/group"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/match"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/player"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/rating"
	"github.com/torryt/foos-and-friends-sub002/internal/domain/season"
	"github.com/torryt/foos-and-friends-sub002/internal/infrastructure/repository/memory"
	"github.com/torryt/foos-and-friends-sub002/internal/infrastructure/repository/postgres"
	"github.com/torryt/foos-and-friends-sub002/internal/interfaces/httpapi"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/cache"
	idgen "github.com/torryt/foos-and-friends-sub002/internal/platform/id"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/logging"
	"github.com/torryt/foos-and-friends-sub002/internal/platform/resilience"
	"github.com/torryt/foos-and-friends-sub002/internal/usecase"
)

type repositories struct {
	groups  group.Repository
	seasons season.Repository
	players player.Repository
	matches match.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. A closer is returned for resources that outlive the
// router, currently only the database handle.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closer, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	eloCfg := rating.Config{
		BaseRating: cfg.EloBaseRating,
		KFactor:    cfg.EloKFactor,
	}
	generator := idgen.NewRandomGenerator()

	groupSvc := usecase.NewGroupService(repos.groups, repos.seasons, generator, logger)
	playerSvc := usecase.NewPlayerService(repos.groups, repos.players, repos.matches, generator, logger)
	matchSvc := usecase.NewMatchService(repos.groups, repos.seasons, repos.players, repos.matches, generator, eloCfg, logger)
	ratingSvc := usecase.NewRatingService(repos.groups, repos.players, repos.matches, eloCfg)
	leaderboardSvc := usecase.NewLeaderboardService(repos.groups, repos.seasons, repos.players, repos.matches, eloCfg, cfg.StatsPoolSize)
	streakSvc := usecase.NewStreakService(repos.groups, repos.players, repos.matches)
	relationshipSvc := usecase.NewRelationshipService(repos.groups, repos.players, repos.matches)

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		matchSvc.SetCache(store)
		ratingSvc.SetCache(store)
		leaderboardSvc.SetCache(store)
		logger.Info("derived stat cache enabled", "ttl", cfg.CacheTTL.String())
	}

	passportClient := passport.NewClient(passport.ClientConfig{
		BaseURL:        cfg.PassportBaseURL,
		IntrospectPath: cfg.PassportIntrospectURL,
		Timeout:        cfg.PassportTimeout,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PassportCircuitEnabled,
			FailureThreshold: cfg.PassportCircuitFailureCount,
			OpenTimeout:      cfg.PassportCircuitOpenTimeout,
			HalfOpenLimit:    cfg.PassportCircuitHalfOpenLimit,
		},
	})

	handler := httpapi.NewHandler(
		groupSvc,
		playerSvc,
		matchSvc,
		ratingSvc,
		leaderboardSvc,
		streakSvc,
		relationshipSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, passportClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closer, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		groupRepo := memory.NewGroupRepository(memory.SeedGroups())
		for _, membership := range memory.SeedMemberships() {
			if err := groupRepo.AddMember(context.Background(), membership); err != nil {
				return repositories{}, nil, fmt.Errorf("seed membership: %w", err)
			}
		}
		return repositories{
			groups:  groupRepo,
			seasons: memory.NewSeasonRepository(memory.SeedSeasons()),
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			matches: memory.NewMatchRepository(),
		}, func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	logger.Info("using postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		groups:  postgres.NewGroupRepository(db),
		seasons: postgres.NewSeasonRepository(db),
		players: postgres.NewPlayerRepository(db),
		matches: postgres.NewMatchRepository(db),
	}, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
