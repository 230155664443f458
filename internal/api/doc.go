// Package api implements the HTTP handlers for the PlanIt API: account
// registration and login, category, goal, and task CRUD, the user's
// notifications listing, and per-category task statistics.
//
// Handlers decode and validate request payloads, delegate to the service
// layer, and translate service errors into sanitized HTTP responses via
// HandleAPIError. No business rules live here.
package api
