// Package runtime provides application runtime context for Rewind.
package runtime

import (
	"log/slog"

	"github.com/manav03panchal/rewind/internal/collection"
	"github.com/manav03panchal/rewind/internal/config"
	"github.com/manav03panchal/rewind/internal/logging"
	"github.com/manav03panchal/rewind/internal/model"
	"github.com/manav03panchal/rewind/internal/output"
	"github.com/manav03panchal/rewind/internal/script"
	"github.com/manav03panchal/rewind/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter

	// Repositories
	SnapshotRepo *storage.SnapshotRepo

	// SnapshotLimit bounds how many snapshots survive a save. Zero keeps all.
	SnapshotLimit int
	// Capacity preallocates record storage for new collections.
	Capacity int

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath        string
	InMemory      bool
	SnapshotLimit int
	Capacity      int
	Format        output.Format
	ColorMode     output.ColorMode
	Debug         bool
}

// DefaultOptions returns runtime options from the global configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Global)
}

// OptionsFromConfig builds runtime options from cfg.
func OptionsFromConfig(cfg *config.RuntimeConfig) Options {
	return Options{
		DBPath:        cfg.Storage.Path,
		InMemory:      cfg.Storage.InMemory,
		SnapshotLimit: cfg.Storage.SnapshotLimit,
		Capacity:      cfg.Session.InitialCapacity,
		Format:        output.FormatCLI,
		ColorMode:     output.ColorAuto,
		Debug:         false,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	logging.DebugLog("runtime opened", "path", db.Path(), "in_memory", opts.InMemory)

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		DB:            db,
		Formatter:     formatter,
		SnapshotRepo:  storage.NewSnapshotRepo(db),
		SnapshotLimit: opts.SnapshotLimit,
		Capacity:      opts.Capacity,
		Debug:         opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB == nil {
		return nil
	}
	if err := c.DB.Close(); err != nil {
		logging.Error("failed to close snapshot store", logging.KeyError, err)
		return err
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI or plain.
func (c *Context) IsCLI() bool {
	return !c.IsJSON()
}

// Sink returns the event sink for the configured output format.
func (c *Context) Sink() script.Sink {
	if c.IsJSON() {
		return c.JSONFormatter()
	}
	return c.CLIFormatter()
}

// NewCollection creates an empty collection sized from the configuration.
func (c *Context) NewCollection(logger *slog.Logger) *collection.Collection {
	opts := []collection.Option{collection.WithCapacity(c.Capacity)}
	if logger != nil {
		opts = append(opts, collection.WithLogger(logger))
	}
	return collection.New(opts...)
}

// Saver returns a snapshot saver that prunes old snapshots after every save.
func (c *Context) Saver() script.SnapshotSaver {
	return &pruningSaver{repo: c.SnapshotRepo, limit: c.SnapshotLimit, path: c.DB.Path(), debugf: c.Debugf}
}

type pruningSaver struct {
	repo   *storage.SnapshotRepo
	limit  int
	path   string
	debugf func(format string, args ...interface{})
}

func (p *pruningSaver) Save(label string, records []model.Record) (*model.Snapshot, error) {
	snap, err := p.repo.Save(label, records)
	if err != nil {
		return nil, WrapDiskFullError(err, "save snapshot", p.path)
	}
	if p.limit > 0 {
		// The snapshot is already stored; old ones are cleaned up next time.
		if _, err := p.repo.Prune(p.limit); err != nil {
			logging.Warn("prune after save failed", logging.KeyError, err)
			p.debugf("Failed to prune snapshots: %v", err)
		}
	}
	return snap, nil
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
