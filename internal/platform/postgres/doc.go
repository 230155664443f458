// Package postgres provides PostgreSQL implementations of the store
// interfaces. Task rows embed their notification as nullable columns so
// that the notification lives and dies with its task and the scheduler's
// mark-sent write stays a single-row conditional update.
package postgres
