// Package config manages application configuration for the Guildhall API.
//
// Configuration is read from environment variables into tagged structs using
// github.com/caarlos0/env. Defaults live in the envDefault tags, so the zero
// environment yields a runnable development setup.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - StoreConfig: persistence backend selection (surrealdb or sqlite)
//   - DatabaseConfig: SurrealDB connection settings
//   - SQLiteConfig: embedded store file
//   - BalanceConfig: minimum capacity, apply mode and the rebalance job
//
// # Environment Variables
//
//	SERVER_PORT            - HTTP server port (default: 8080)
//	SERVER_ENV             - development, production or test
//	STORE_DRIVER           - surrealdb (default) or sqlite
//	DB_HOST, DB_PORT       - SurrealDB address
//	DB_NAMESPACE           - SurrealDB namespace
//	DB_DATABASE            - SurrealDB database
//	SQLITE_PATH            - SQLite file, ":memory:" for tests
//	BALANCE_MIN_CAPACITY   - smallest accepted max guild players (default: 3)
//	BALANCE_APPLY_MODE     - atomic (default) or best_effort
//	REBALANCE_INTERVAL     - period of the background balancer, 0 disables
//	REBALANCE_CAPACITY     - capacity used by the background balancer
package config
