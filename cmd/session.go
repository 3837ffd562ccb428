package cmd

import (
	"context"
	"log/slog"

	"github.com/manav03panchal/rewind/internal/collection"
	"github.com/manav03panchal/rewind/internal/logging"
	"github.com/manav03panchal/rewind/internal/script"
)

// session is one in-memory editing session: a fresh collection, its
// runner and a logger tagged with the session ID.
type session struct {
	ctx    context.Context
	logger *slog.Logger
	coll   *collection.Collection
	runner *script.Runner
}

// newSession starts a session whose events go to the output formatter.
func newSession(parent context.Context, opts ...script.Option) *session {
	if parent == nil {
		parent = context.Background()
	}
	sctx := logging.WithSessionID(parent, logging.GenerateSessionID())
	logger := logging.LoggerFromContext(sctx)

	coll := ctx.NewCollection(logger.WithGroup("collection"))
	opts = append([]script.Option{
		script.WithSaver(ctx.Saver()),
		script.WithLogger(logger.WithGroup("script")),
	}, opts...)

	logger.Debug("session started", logging.KeyOperation, "session")
	return &session{
		ctx:    sctx,
		logger: logger,
		coll:   coll,
		runner: script.NewRunner(coll, ctx.Sink(), opts...),
	}
}

// finish prints the run summary when requested.
func (s *session) finish(showStats bool) error {
	stats := s.runner.Stats()
	s.logger.Debug("session finished",
		logging.KeyCount, stats.Commands,
		"edits", stats.Edits,
		"undos", stats.Undos,
		"redos", stats.Redos)

	if !showStats {
		return nil
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRun(stats, s.coll.Records())
	}
	ctx.CLIFormatter().PrintStats(stats)
	return nil
}
