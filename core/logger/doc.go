// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production). Loggers are constructed once per process and
// passed explicitly to the components that need them, so tests can substitute
// a zaptest or Nop logger without process-wide side effects.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Scan started", zap.String("collection", path))
package logger
