// Package logger provides structured logging for groupchain using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("chain")
//	log.Debug("concat finished", logger.Fields(logger.FieldGroups, 3))
package logger
