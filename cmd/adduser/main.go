// Command adduser registers an account from the terminal, using the same
// validation and hashing rules as the API's register endpoint.
package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/expense-api/internal/config"
	"github.com/phrazzld/expense-api/internal/platform/postgres"
	"github.com/phrazzld/expense-api/internal/platform/sqlite"
	"github.com/phrazzld/expense-api/internal/service"
	"github.com/phrazzld/expense-api/internal/service/auth"
	"github.com/phrazzld/expense-api/internal/store"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	// Register the pgx database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
)

const defaultDSN = "expenses.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	driver := fs.String("driver", "sqlite", "Database driver (sqlite or postgres)")
	dsn := fs.String("db", defaultDSN, "SQLite file path or PostgreSQL connection URL")
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> -email <email> [-password <password>] [-driver sqlite|postgres] [-db <dsn>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user, email")
	}

	// The flag wins over the environment only when it was changed.
	if url := os.Getenv(config.EnvPrefix + "_DATABASE_URL"); url != "" && *dsn == defaultDSN {
		*dsn = url
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, users, err := openUserStore(ctx, *driver, *dsn, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	authService, err := newAuthService(users, *cost, logger)
	if err != nil {
		return err
	}

	result, err := authService.Register(ctx, *username, *email, password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return fmt.Errorf("user with email %s already exists", *email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", result.User.Username, result.User.ID)
	return nil
}

func openUserStore(ctx context.Context, driver, dsn string, logger *slog.Logger) (*sql.DB, store.UserStore, error) {
	switch driver {
	case "sqlite":
		db, err := sqlite.Open(ctx, dsn, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, sqlite.NewUserStore(db, logger), nil

	case "postgres":
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return db, postgres.NewPostgresUserStore(db, logger), nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// newAuthService builds the register path. The token it issues is thrown
// away, so it is signed with a throwaway key.
func newAuthService(users store.UserStore, cost int, logger *slog.Logger) (service.AuthService, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	tokens, err := auth.NewTokenService(config.AuthConfig{JWTSecret: hex.EncodeToString(key)})
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(users, auth.NewBcryptHasher(cost), tokens, logger)
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
