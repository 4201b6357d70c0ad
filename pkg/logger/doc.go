// Package logger provides a thin factory around Go's slog package: functional
// options for format, level, output and static attributes, an environment
// driven constructor, and attribute helpers that keep key naming consistent
// across the repo.
//
// New builds a *slog.Logger from options. NewFromEnv reads LOG_LEVEL and
// LOG_FORMAT (loading a .env file once if one exists) and delegates to New.
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	)
//	log.Debug("worker running", logger.WorkerID(id))
//
// The task and worker packages accept a logger through their options and
// default to a discard handler, so logging stays opt-in.
package logger
