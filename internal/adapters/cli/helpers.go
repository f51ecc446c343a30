package cli

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/prun-go/internal/adapters/api"
	"github.com/andrescamacho/prun-go/internal/adapters/persistence"
	"github.com/andrescamacho/prun-go/internal/application/planning"
	"github.com/andrescamacho/prun-go/internal/infrastructure/config"
	"github.com/andrescamacho/prun-go/internal/infrastructure/database"
)

// services bundles the wired adapters a command needs
type services struct {
	cfg    *config.Config
	db     *gorm.DB
	client *api.FIOClient
}

func (s *services) close() {
	if s.db != nil {
		_ = database.Close(s.db)
	}
}

// newServices loads configuration and wires config -> database -> snapshot
// cache -> FIO client
func newServices() (*services, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	cache := persistence.NewGormSnapshotRepository(db, nil)
	client := api.NewFIOClient(api.ClientConfig{
		BaseURL:     cfg.API.BaseURL,
		APIKey:      cfg.API.Key,
		Username:    cfg.API.Username,
		Timeout:     cfg.API.Timeout,
		RateLimit:   float64(cfg.API.RateLimit.Requests),
		MaxRetries:  cfg.API.Retry.MaxAttempts,
		BackoffBase: cfg.API.Retry.BackoffBase,
		Cache:       cache,
		CacheMaxAge: cfg.API.CacheMaxAge,
	})

	return &services{cfg: cfg, db: db, client: client}, nil
}

// parseRecipeSelection parses repeated --recipe flags of the form
// BUILDING:RecipeName, e.g. "FRM:2xH2O=4xHCP"
func parseRecipeSelection(flags []string) (planning.RecipeSelection, error) {
	selection := make(planning.RecipeSelection, len(flags))
	for _, flag := range flags {
		building, recipe, found := strings.Cut(flag, ":")
		if !found || building == "" || recipe == "" {
			return nil, fmt.Errorf("invalid recipe %q: expected BUILDING:RecipeName", flag)
		}
		building = strings.ToUpper(building)
		selection[building] = append(selection[building], recipe)
	}
	return selection, nil
}

// formatDuration renders a duration as "2days 3h 20m", dropping zero parts
// and showing seconds only below a day
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%ddays", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if days <= 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// formatAmounts renders a ticker -> amount map as "4xHCP 2xGRN" in the given
// ticker order
func formatAmounts(amounts map[string]int, tickers []string) string {
	var parts []string
	for _, ticker := range tickers {
		if amounts[ticker] != 0 {
			parts = append(parts, fmt.Sprintf("%dx%s", amounts[ticker], ticker))
		}
	}
	return strings.Join(parts, " ")
}
