package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/config"
	"github.com/pucklab/puckcast/pkg/database"
	"github.com/pucklab/puckcast/pkg/logging"
	"github.com/pucklab/puckcast/pkg/models"
	"github.com/pucklab/puckcast/pkg/nhl"
	"github.com/pucklab/puckcast/pkg/repositories"
	"github.com/pucklab/puckcast/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	app := &cli.App{
		Name:  "puckcast-ingest",
		Usage: "NHL standings ingestion and outcome labeling",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "print the full run report as JSON on stdout",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "seed-teams",
				Usage:  "populate the teams table from the league franchise listing",
				Action: runSeedTeams,
			},
			{
				Name:   "history",
				Usage:  "ingest weekly standings snapshots for every configured season",
				Action: runHistory,
			},
			{
				Name:   "live",
				Usage:  "refresh standings snapshots for the in-progress season",
				Action: runLive,
			},
			{
				Name:   "outcomes",
				Usage:  "resolve playoff qualification labels for completed seasons",
				Action: runOutcomes,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// env bundles the shared wiring every subcommand needs.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *database.DB
	client *nhl.Client
}

func (e *env) close() {
	e.db.Close()
	_ = e.logger.Sync()
}

// setup loads configuration, connects to the database and runs migrations.
// The returned context is cancelled on SIGINT/SIGTERM so a long backfill
// stops between dates instead of mid-transaction.
func setup(c *cli.Context) (*env, context.Context, context.CancelFunc, error) {
	cfg, err := config.Load(c.String("config"), Version)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	db, err := database.Connect(ctx, cfg.Database.ConnectionString(), cfg.Database.MaxConnections)
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		db.Close()
		cancel()
		return nil, nil, nil, err
	}
	err = database.RunMigrations(sqlDB, cfg.MigrationsPath, logger)
	sqlDB.Close()
	if err != nil {
		db.Close()
		cancel()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	e := &env{
		cfg:    cfg,
		logger: logger,
		db:     db,
		client: nhl.NewClient(&cfg.NHL, logger),
	}
	return e, ctx, cancel, nil
}

func runSeedTeams(c *cli.Context) error {
	e, ctx, cancel, err := setup(c)
	if err != nil {
		return err
	}
	defer cancel()
	defer e.close()

	seeder := services.NewSeedService(e.client, repositories.NewTeamRepository(e.db), e.logger)
	count, err := seeder.SeedTeams(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d teams\n", count)
	return nil
}

func runHistory(c *cli.Context) error {
	return runIngest(c, func(all []models.Season) []models.Season {
		return all
	})
}

func runLive(c *cli.Context) error {
	return runIngest(c, func(all []models.Season) []models.Season {
		var current []models.Season
		for _, s := range all {
			if s.Current {
				current = append(current, s)
			}
		}
		return current
	})
}

func runIngest(c *cli.Context, filter func([]models.Season) []models.Season) error {
	e, ctx, cancel, err := setup(c)
	if err != nil {
		return err
	}
	defer cancel()
	defer e.close()

	seasons, err := config.LoadSeasons(e.cfg.SeasonsPath)
	if err != nil {
		return err
	}
	seasons = filter(seasons)
	if len(seasons) == 0 {
		return fmt.Errorf("no seasons selected from %s", e.cfg.SeasonsPath)
	}

	svc := services.NewIngestService(
		e.db,
		e.client,
		repositories.NewStandingsRepository(e.db),
		repositories.NewTeamRepository(e.db),
		e.logger,
	)

	report, err := svc.Ingest(ctx, seasons)
	if report != nil && c.Bool("report") {
		printReport(report)
	}
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d dates processed, %d skipped, %d rows upserted, %d rows skipped\n",
		report.RunID, report.DatesProcessed, report.DatesSkipped, report.RowsUpserted, report.RowsSkipped)
	return nil
}

func runOutcomes(c *cli.Context) error {
	e, ctx, cancel, err := setup(c)
	if err != nil {
		return err
	}
	defer cancel()
	defer e.close()

	seasons, err := config.LoadSeasons(e.cfg.SeasonsPath)
	if err != nil {
		return err
	}

	svc := services.NewOutcomeService(
		e.client,
		repositories.NewTeamRepository(e.db),
		repositories.NewOutcomeRepository(e.db),
		e.logger,
	)

	report, err := svc.Resolve(ctx, seasons)
	if report != nil && c.Bool("report") {
		printReport(report)
	}
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d seasons resolved, %d skipped, %d rows upserted\n",
		report.RunID, report.SeasonsResolved, report.SeasonsSkipped, report.RowsUpserted)
	return nil
}

func printReport(report any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}
