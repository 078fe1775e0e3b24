// Package identity defines who performs an action: the closed set of roles and the
// Actor, an authenticated user id paired with its role.
//
// An Actor is derived once per request from a verified session and passed explicitly
// into every decision. A nil *Actor means the request is unauthenticated; decision
// functions treat it as "deny everything".
package identity
