// Package config handles application configuration loading.
//
// Configuration is assembled from defaults declared as struct tags, a .env
// file (if present) and environment variables, in increasing order of
// precedence. Nested keys map to environment variables with underscores,
// e.g. database.host becomes DATABASE_HOST.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	db, err := database.Connect(cfg.Database)
package config
