// Package middleware provides HTTP middleware for the Guildhall API.
//
// cmd/server wraps the ServeMux as:
//
//	middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger(logger),
//	    middleware.Recovery,
//	    middleware.CORS(cfg.Server.AllowedOrigins),
//	    middleware.Compress,
//	)
//
// RequestID runs first so every later log line can carry the id returned by
// GetRequestID.
package middleware
