// Package logging configures the zap logger used across blockhub.
//
// Production mode writes one JSON object per entry; development mode
// writes coloured console lines and attaches stack traces from warn up.
// Both write to stderr unless Options.Output says otherwise, leaving
// stdout to command results such as build reports.
//
//	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
//	loader := catalog.NewLoader(fsys, manifest, logger)
//	logger.Named("build").Info("Registry published", zap.Int("items", n))
package logging
