// Package memory provides in-memory implementations of driven ports.
// Nothing is persisted; state lives for the lifetime of the process.
package memory
