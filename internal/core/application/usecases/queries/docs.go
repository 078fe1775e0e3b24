// Package queries holds the read side of the order desk. Handlers read straight from
// the database with raw SQL and return flat response structs shaped for the HTTP
// layer; they never change state.
package queries
