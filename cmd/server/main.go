// Command server runs the combined game/web server, or creates an
// account against its database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/passwordverifier"
	"github.com/udisondev/la2go/internal/protocol/opcode"
	"github.com/udisondev/la2go/internal/session"
	"github.com/udisondev/la2go/internal/store"
	"github.com/udisondev/la2go/internal/store/postgres"
	"github.com/udisondev/la2go/internal/webfrontend"
	"github.com/udisondev/la2go/internal/worldsim"
)

const defaultConfigPath = "config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the server's YAML config file")
	logLevel := flag.String("log", "", "log level override: debug, info, warn, error")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: server [-config FILE] [-log LEVEL] <run|create-account> [args]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config %s: %v\n", *configPath, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(log)

	switch args[0] {
	case "run":
		err = runServer(cfg, log)
	case "create-account":
		fs := flag.NewFlagSet("create-account", flag.ExitOnError)
		name := fs.String("name", "", "account name")
		password := fs.String("password", "", "account password")
		fs.Parse(args[1:])
		if *name == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "create-account requires -name and -password")
			os.Exit(1)
		}
		err = createAccount(cfg, *name, *password)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		os.Exit(1)
	}

	if err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// runServer wires the opcode table, database, worldsim multiverse, game
// session server, and web frontend together and runs all three supervised
// goroutines under one errgroup until ctx is cancelled.
func runServer(cfg config.Server, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("shutting down", "signal", sig)
		cancel()
	}()

	log.Info("loading opcode table", "path", cfg.Data.Path)
	opcodes, err := opcode.Load(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("loading opcode table: %w", err)
	}

	log.Info("running database migrations")
	if err := store.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	accounts := postgres.NewAccountStore(pool)
	tickets := postgres.NewTicketStore(pool)
	users := postgres.NewUserStore(pool)

	multiverse := worldsim.New(cfg.Game, accounts, tickets, users, log)

	sessionServer := session.NewServer(cfg.Network, opcodes, multiverse.InputChannel(), log)
	webServer := webfrontend.NewServer(cfg, accounts, tickets, passwordverifier.Argon2Verifier{}, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting worldsim multiverse")
		return multiverse.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting game session server", "port", cfg.Network.GamePort)
		return sessionServer.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting web frontend", "port", cfg.Network.WebPort)
		return webServer.Run(gctx)
	})

	return g.Wait()
}

// createAccount hashes password with the same Argon2Verifier the web
// frontend verifies against, then inserts a new account row.
func createAccount(cfg config.Server, name, password string) error {
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	hash, err := passwordverifier.Argon2Verifier{}.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	accounts := postgres.NewAccountStore(pool)
	account, err := accounts.Create(ctx, name, hash)
	if err != nil {
		return fmt.Errorf("creating account %q: %w", name, err)
	}

	slog.Info("account created", "name", name, "account_id", account.ID)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
