package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"usermanagement/internal/config"
	"usermanagement/internal/db"
	apperrors "usermanagement/internal/errors"
	"usermanagement/internal/logger"
	"usermanagement/internal/model"
	"usermanagement/internal/repository"
	"usermanagement/internal/validation"
)

const fetchTimeout = 30 * time.Second

func main() {
	source := flag.String("source", "users.json", "path or http(s) URL of a JSON array of users")
	reset := flag.Bool("reset", false, "drop the users table before seeding")
	flag.Parse()

	log := logger.NewLogger("seed")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger.SetLevel(cfg.LogLevel)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close(gormDB)
	log.Info().Msg("connected to database")

	if *reset {
		log.Warn().Msg("reset requested, dropping users table")
		if err := gormDB.Migrator().DropTable(&model.User{}); err != nil {
			log.Warn().Err(err).Msg("failed to drop users table")
		}
		if err := db.Migrate(gormDB); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	ctx := context.Background()

	log.Info().Str("source", *source).Msg("loading users")
	users, err := loadUsers(ctx, *source)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load users")
	}
	log.Info().Int("count", len(users)).Msg("loaded users")

	seeded, skipped, err := seedUsers(ctx, log, repository.NewUserRepository(gormDB), validation.New(), users)
	if err != nil {
		log.Fatal().Err(err).Int("seeded", seeded).Msg("failed to seed users")
	}

	log.Info().
		Int("created", seeded).
		Int("skipped", skipped).
		Int("total", len(users)).
		Msg("seed completed")
}

// loadUsers reads a JSON array of users from a local file or an http(s) URL.
func loadUsers(ctx context.Context, source string) ([]model.UserRequest, error) {
	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var users []model.UserRequest
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return users, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// seedUsers inserts every valid entry. Entries failing validation are logged
// and skipped; a store error aborts the run.
func seedUsers(ctx context.Context, log *logger.Logger, repo repository.UserRepository, v echo.Validator, users []model.UserRequest) (seeded, skipped int, err error) {
	for i, req := range users {
		if err := v.Validate(&req); err != nil {
			var validationErr *apperrors.ValidationError
			if !errors.As(err, &validationErr) {
				return seeded, skipped, fmt.Errorf("validate entry %d: %w", i, err)
			}
			log.Warn().Int("index", i).Interface("fields", validationErr.Violations).Msg("skipping invalid user")
			skipped++
			continue
		}

		user, err := repo.Create(ctx, req)
		if err != nil {
			return seeded, skipped, fmt.Errorf("error creating user %q: %w", req.Email, err)
		}
		log.Debug().Uint("id", user.ID).Str("email", user.Email).Msg("user created")
		seeded++
	}
	return seeded, skipped, nil
}
