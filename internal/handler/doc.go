// Package handler provides HTTP request handlers for the Guildhall API.
//
// Each handler struct wraps one service interface, so handlers can be driven
// by the real services in cmd/server or by func-field fakes in tests.
//
// # Handler Pattern
//
//   - Constructor function (NewXxxHandler) accepts the service it serves
//   - Methods handle specific HTTP endpoints registered on a ServeMux
//   - Path parameters are read with r.PathValue
//   - Errors are mapped to RFC 9457 Problem Details by MapServiceError
//
// # Response Format
//
// Successful responses wrap the payload as {"data": ...}. Errors use
// application/problem+json with the status code chosen by MapServiceError:
//
//   - 400 balance preconditions and malformed requests
//   - 404 unknown guild or player ids
//   - 409 duplicate guild or player names
//   - 422 field validation failures
//   - 500 store failures, including partially applied balancing runs
//
// # Example Usage
//
//	players := handler.NewPlayerHandler(playerService)
//	mux.HandleFunc("POST /v1/players/balance", players.Balance)
package handler
