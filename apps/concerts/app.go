//nolint:revive //it is what it is
package concerts

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	_ "time/tzdata"

	"concerts.xdoubleu.com/apps/concerts/internal/jobs"
	"concerts.xdoubleu.com/apps/concerts/internal/repositories"
	"concerts.xdoubleu.com/apps/concerts/internal/services"
	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"concerts.xdoubleu.com/internal/clock"
	"concerts.xdoubleu.com/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

//go:embed templates/html/**/*html
var htmlTemplates embed.FS

//go:embed static/*
var staticFiles embed.FS

type Concerts struct {
	logger       *slog.Logger
	ctx          context.Context
	ctxCancel    context.CancelFunc
	db           postgres.DB
	Config       config.Config
	clock        clock.Clock
	scrapers     []scrapers.Scraper
	Services     *services.Services
	Repositories *repositories.Repositories
	tpl          *template.Template
	jobQueue     *threading.JobQueue
}

func New(
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
) *Concerts {
	c := clock.NewSystem(cfg.Location())

	return NewInner(
		logger,
		cfg,
		db,
		c,
		scrapers.Default(logger, c, cfg.ExtraConcertsPath),
	)
}

func NewInner(
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
	c clock.Clock,
	concertScrapers []scrapers.Scraper,
) *Concerts {
	//nolint:mnd //no magic number
	jobQueue := threading.NewJobQueue(logger, 2, 100)

	//nolint:exhaustruct //other fields are optional
	app := &Concerts{
		logger:   logger,
		Config:   cfg,
		clock:    c,
		scrapers: concertScrapers,
		tpl:      parseTemplates(),
		jobQueue: jobQueue,
	}

	app.setContext()
	app.setDB(db)
	app.setJobs()

	return app
}

func (app *Concerts) setDB(db postgres.DB) {
	// make sure previous app is cancelled internally
	app.ctxCancel()
	app.jobQueue.Clear()

	app.setContext()

	spandb := postgres.NewSpanDB(db)
	app.db = spandb

	app.Repositories = repositories.New(app.db)
	app.Services = services.New(
		app.logger,
		app.Config,
		app.clock,
		app.jobQueue,
		app.Repositories,
		app.scrapers,
	)
}

func (app *Concerts) setJobs() {
	err := app.jobQueue.AddJob(
		jobs.NewScrapeJob(app.logger, app.Services.Concerts, app.Config.ScrapeInterval),
		app.Services.WebSocket.UpdateState,
	)
	if err != nil {
		panic(err)
	}

	app.Services.WebSocket.RegisterTopics(app.jobQueue.FetchJobIDs())
}

func (app *Concerts) setContext() {
	ctx, cancel := context.WithCancel(context.Background())
	app.ctx = ctx
	app.ctxCancel = cancel
}

func (app *Concerts) ApplyMigrations(db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	if err := goose.Up(migrationsDB, "migrations"); err != nil {
		return err
	}

	return nil
}

func (app *Concerts) GetName() string {
	return "concerts"
}
