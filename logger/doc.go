// Package logger provides structured logging for nap clients using zerolog.
//
// Clients log each request at debug level with method, URL, status and
// duration fields. Nothing is printed unless a logger is configured,
// either per client or globally through Init / SetGlobalLogger.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.New(&cfg, "github")
//	log.Debug("request sent", logger.Fields("method", "GET"))
package logger
