// Package auth holds the credential adapters: bcrypt password hashing and HS256 session
// tokens carrying the user id as subject and the role as a custom claim.
package auth
