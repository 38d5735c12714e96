// Package errors provides the structured error type used across groupchain.
// Every failure surfaced to callers is an *AppError carrying a machine-readable
// code, a human-readable message, optional details and an optional cause.
package errors
