package preprocessing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

// EMBEDDED_SOURCE selects the built-in network.
const EMBEDDED_SOURCE = "embedded"

// ErrUnsupportedSource is returned for a path whose kind cannot be inferred.
var ErrUnsupportedSource = errors.New("unsupported network source")

// Load resolves source to a network: "embedded" (or empty), a GTFS directory,
// a .yaml/.yml file or a .db/.sqlite/.sqlite3 file.
func Load(ctx context.Context, source string, logger *zap.Logger) (*models.Network, error) {
	if source == "" || source == EMBEDDED_SOURCE {
		logger.Info("Loading embedded network")
		return Default()
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("network source %s: %w", source, err)
	}
	if info.IsDir() {
		return LoadGTFS(source, logger)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		logger.Info("Loading YAML network", zap.String("path", source))
		return LoadYAMLFile(source)
	case ".db", ".sqlite", ".sqlite3":
		logger.Info("Loading SQLite network", zap.String("path", source))
		return LoadSQLite(ctx, source)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
}

// Save writes net to dest, choosing the format from its extension.
func Save(ctx context.Context, dest string, net *models.Network) error {
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".yaml", ".yml":
		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("create %s: %w", dest, err)
		}
		if err := WriteYAML(f, net); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".db", ".sqlite", ".sqlite3":
		return SaveSQLite(ctx, dest, net)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedSource, dest)
	}
}
