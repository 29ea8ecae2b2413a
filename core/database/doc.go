// Package database handles connections to the ML (multi-LIMS) warehouse.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration. The
// warehouse is read-only as far as this application is concerned; queries over
// its tables live in core/mlwh and feature/illumina.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
package database
