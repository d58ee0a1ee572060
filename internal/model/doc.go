// Package model defines domain entities and data structures for the Guildhall API.
//
// The model package contains struct definitions for domain objects, request types,
// and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
//   - Player: roster entry with a class, an experience score and an optional guild
//   - Guild: named roster of players; its load is the sum of member experience
//   - Assignment: a proposed (player, guild) pairing produced by a balancing run
//
// # Classes and Roles
//
// Every class maps onto one of three macro-roles a guild needs to be viable:
//
//	WARRIOR         -> melee
//	CLERIC          -> support
//	MAGE, ARCHER    -> ranged
//
// # Validation
//
// Request types expose Validate() returning a slice of FieldError, which handlers
// turn into a 422 Problem Details response:
//
//	if errs := req.Validate(); len(errs) > 0 {
//	    WriteError(w, model.NewValidationError(errs))
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go.
package model
