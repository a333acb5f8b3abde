package config

import (
	"context"
	"log/slog"

	"github.com/finops-lab/compliancebot/pkg/domain/interfaces"
	"github.com/finops-lab/compliancebot/pkg/repository/memory"
	"github.com/finops-lab/compliancebot/pkg/repository/sqlite"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Repository selects and configures the persistence backend
type Repository struct {
	backend string
	dbPath  string
}

func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Repository backend (memory, sqlite)",
			Category:    "Repository",
			Value:       "memory",
			Sources:     cli.EnvVars("COMPLIANCEBOT_REPOSITORY"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file path (sqlite backend only)",
			Category:    "Repository",
			Value:       "compliancebot.db",
			Sources:     cli.EnvVars("COMPLIANCEBOT_SQLITE_PATH"),
			Destination: &x.dbPath,
		},
	}
}

func (x Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("sqlite-path", x.dbPath),
	)
}

// Configure initializes the repository based on the backend type
func (x *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch x.backend {
	case "memory", "":
		return memory.New(), nil
	case "sqlite":
		repo, err := sqlite.New(ctx, x.dbPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		return repo, nil
	default:
		return nil, goerr.New("unknown repository backend", goerr.V("backend", x.backend))
	}
}
