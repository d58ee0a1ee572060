// Package service implements the business logic layer for the Guildhall API.
//
// Services validate requests, enforce uniqueness rules and orchestrate the
// repositories. Each service declares the repository interface it needs, so the
// SurrealDB and SQLite stores are interchangeable and tests can use func-field
// mocks.
//
// # Services
//
//   - GuildService: guild CRUD with unique names
//   - PlayerService: player CRUD, balancing and roster reset
//
// # Balancing
//
// PlayerService.Balance takes a snapshot of guilds and candidates, asks the
// balance engine for decisions and persists them. A mutex serializes runs so the
// decisions of one run are never computed against a half-applied previous run.
//
// Decisions are persisted according to ApplyMode:
//
//   - ApplyAtomic: one AssignGuilds transaction; on failure nothing is written
//   - ApplyBestEffort: one write per decision; failures are collected and
//     reported in an *ApplyError while the remaining writes continue
//
// # Error Handling
//
// Services return the sentinel errors in errors.go, plus *ValidationError and
// *ApplyError which carry details for the caller:
//
//	var applyErr *service.ApplyError
//	if errors.As(err, &applyErr) {
//	    log.Printf("failed: %v", applyErr.Failed)
//	}
package service
