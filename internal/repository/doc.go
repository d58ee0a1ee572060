// Package repository implements the SurrealDB data access layer for the Guildhall API.
//
// GuildRepository and PlayerRepository satisfy the repository interfaces declared
// by the service package. The sqlite subpackage provides an embedded alternative
// with the same contracts.
//
// # Data Model
//
//	guild  { name, created_on, updated_on }
//	player { name, class, experience, guild: option<record<guild>>, created_on, updated_on }
//
// A player's guild is a record link. A guild's roster is derived by selecting the
// players that link to it, so there is no second copy of membership to keep in sync.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//   - AtomicBatch for writes that must apply together (AssignGuilds, guild Delete)
//
// # Not Found
//
// Lookups return (nil, nil) when the record does not exist; callers translate that
// into their own not-found error.
//
//	guild, err := repo.GetByID(ctx, "guild:abc123")
//	if err != nil {
//	    return err
//	}
//	if guild == nil {
//	    return ErrGuildNotFound
//	}
package repository
