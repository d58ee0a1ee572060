// Package balance implements the player-to-guild balancing engine.
//
// The engine is pure: it takes a snapshot of guilds and a list of candidate
// players, performs an in-memory greedy pass and returns assignment decisions.
// It performs no I/O, holds no locks and never touches the snapshot it was given.
//
// # Algorithm
//
// Candidates without a guild are visited in input order. For each one the guilds
// below capacity are ranked by the composite key (covered, load):
//
//   - covered is 0 when the guild's working roster lacks the candidate's class
//   - load is the working sum of member experience
//
// The first guild after a stable sort receives the candidate, and its working
// roster is updated before the next candidate is ranked. Placements are never
// reconsidered within a run.
//
// # Failures
//
// Precondition failures are returned before any decision is made:
//
//   - ErrInvalidCapacity (as *CapacityError): capacity below the configured minimum
//   - ErrInsufficientGuilds: no guilds in the snapshot
//   - ErrInsufficientClassCoverage: fewer melee, support or ranged candidates than guilds
//
// A candidate that finds every guild full is not an error; it is reported in
// Result.Skipped and the run continues.
//
// # Concurrency
//
// Decisions are only valid against the snapshot they were computed from. Callers
// must serialize snapshot-then-apply cycles against the same store.
package balance
