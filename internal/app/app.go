package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/clubarchive/matchlinker/internal/config"
	"github.com/clubarchive/matchlinker/internal/domain/alias"
	"github.com/clubarchive/matchlinker/internal/domain/goal"
	"github.com/clubarchive/matchlinker/internal/domain/match"
	"github.com/clubarchive/matchlinker/internal/domain/player"
	"github.com/clubarchive/matchlinker/internal/domain/team"
	"github.com/clubarchive/matchlinker/internal/infrastructure/repository/memory"
	"github.com/clubarchive/matchlinker/internal/infrastructure/repository/postgres"
	idgen "github.com/clubarchive/matchlinker/internal/platform/id"
	"github.com/clubarchive/matchlinker/internal/platform/logging"
	"github.com/clubarchive/matchlinker/internal/usecase"
)

// Pipeline bundles the wired import and validation services.
type Pipeline struct {
	Importer  *usecase.ImportService
	Validator *usecase.ValidationService
	Aliases   *alias.Table

	db *sqlx.DB
}

func (p *Pipeline) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// NewPostgresPipeline wires the pipeline against the canonical store.
func NewPostgresPipeline(cfg config.Config, logger *logging.Logger) (*Pipeline, error) {
	aliases, err := alias.Load(cfg.AliasFile)
	if err != nil {
		return nil, fmt.Errorf("load alias table: %w", err)
	}

	db, err := otelsqlx.Connect(
		"postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	matchRepo := postgres.NewMatchRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	goalRepo := postgres.NewGoalRepository(db)

	pipeline := buildPipeline(cfg, logger, aliases, pipelineRepos{
		matches: matchRepo,
		teams:   teamRepo,
		players: playerRepo,
		goals:   goalRepo,
	})
	pipeline.db = db

	return pipeline, nil
}

// NewMemoryPipeline wires the pipeline against seeded in-memory stores for
// dry runs.
func NewMemoryPipeline(cfg config.Config, logger *logging.Logger) (*Pipeline, error) {
	aliases, err := alias.Load(cfg.AliasFile)
	if err != nil {
		return nil, fmt.Errorf("load alias table: %w", err)
	}

	goalRepo := memory.NewGoalRepository()
	return buildPipeline(cfg, logger, aliases, pipelineRepos{
		matches: memory.NewMatchRepository(memory.SeedMatches()),
		teams:   memory.NewTeamRepository(memory.SeedTeams()),
		players: memory.NewPlayerRepository(memory.SeedPlayers(), goalRepo),
		goals:   goalRepo,
	}), nil
}

type pipelineRepos struct {
	matches match.Repository
	teams   team.Repository
	players player.Repository
	goals   goal.Repository
}

func buildPipeline(cfg config.Config, logger *logging.Logger, aliases *alias.Table, repos pipelineRepos) *Pipeline {
	linker := usecase.NewLinkService(repos.matches, repos.teams, aliases, usecase.LinkConfig{
		FuzzyFloor:  cfg.FuzzyMinSimilarity,
		FuzzyMargin: cfg.FuzzyTieMargin,
	}, logger)

	attribution := usecase.NewAttributionService(
		repos.players,
		repos.goals,
		idgen.NewRandomGenerator(),
		cfg.PlayerMinSimilarity,
		logger,
	)

	importer := usecase.NewImportService(linker, attribution, repos.matches, usecase.ImportConfig{
		Workers:      cfg.ImportWorkers,
		MaxRetries:   cfg.ImportMaxRetries,
		RetryBackoff: cfg.ImportRetryBackoff,
	}, logger)

	validator := usecase.NewValidationService(repos.matches, repos.goals, cfg.ValidationWorkers, logger)

	return &Pipeline{
		Importer:  importer,
		Validator: validator,
		Aliases:   aliases,
	}
}
