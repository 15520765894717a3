package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	dbfs "github.com/anirecbot/anirec/db"
	"github.com/anirecbot/anirec/internal/anilist"
	"github.com/anirecbot/anirec/internal/bindings"
	"github.com/anirecbot/anirec/internal/config"
	"github.com/anirecbot/anirec/internal/db"
	"github.com/anirecbot/anirec/internal/discord"
	"github.com/anirecbot/anirec/internal/logger"
	"github.com/anirecbot/anirec/internal/recommend"
	"github.com/anirecbot/anirec/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("anirec %s\n", version.GetInfo())
		return
	}

	// `anirec migrate <up|down|version|force N>` runs migrations and exits;
	// the bare command serves the bot (migrating up first).
	if args := flag.Args(); len(args) > 0 && args[0] == "migrate" {
		if err := runMigrateCommand(*configPath, args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fx.New(
		fx.Provide(
			provideConfig(*configPath),
			provideLogger,
			provideDBConn,
			provideBindings,
			provideAniListClient,
			provideRecommender,
			provideBot,
		),
		fx.Invoke(
			runMigrations,
			startBot,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideConfig(path string) func() (config.Config, error) {
	return func() (config.Config, error) {
		cfg, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
}

func provideLogger(cfg config.Config) *slog.Logger {
	return logger.Init(cfg.Log.Level, cfg.Log.Format)
}

func provideDBConn(lc fx.Lifecycle, cfg config.Config) (*sql.DB, error) {
	conn, err := db.Open(context.Background(), cfg.SQLite)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return conn.Close()
		},
	})
	return conn, nil
}

func provideBindings(log *slog.Logger, conn *sql.DB) *bindings.Service {
	return bindings.NewService(log, conn)
}

func provideAniListClient(log *slog.Logger, cfg config.Config) *anilist.Client {
	return anilist.NewClient(log, cfg.AniList.BaseURL, time.Duration(cfg.AniList.TimeoutSeconds)*time.Second)
}

func provideRecommender(log *slog.Logger, client *anilist.Client) *recommend.Service {
	return recommend.NewService(log, client, nil)
}

func provideBot(log *slog.Logger, cfg config.Config, store *bindings.Service, recommender *recommend.Service) (*discord.Bot, error) {
	return discord.NewBot(log, cfg.Discord.BotToken, store, recommender)
}

func runMigrations(log *slog.Logger, conn *sql.DB) error {
	migrations, err := fs.Sub(dbfs.MigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration fs: %w", err)
	}
	return db.RunMigrate(log, conn, migrations, "up", nil)
}

func startBot(lc fx.Lifecycle, bot *discord.Bot) {
	lc.Append(fx.Hook{
		OnStart: bot.Start,
		OnStop:  bot.Stop,
	})
}

func runMigrateCommand(configPath string, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)

	conn, err := db.Open(context.Background(), cfg.SQLite)
	if err != nil {
		return err
	}
	defer conn.Close()

	command := "up"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	migrations, err := fs.Sub(dbfs.MigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration fs: %w", err)
	}
	return db.RunMigrate(log, conn, migrations, command, args)
}
