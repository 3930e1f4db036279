// Package logger provides structured logging for the Esplora client using
// zerolog.
//
// The client never touches zerolog's global state. Loggers are created
// from a Config and passed in; the default is a no-op logger.
//
// # Configuration
//
//	logger:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"}, "esplora")
//	client, err := esplora.NewBlockingClient(cfg, esplora.WithLogger(log))
package logger
