// Package auth holds the credential primitives of the server: bcrypt password
// digests and HS256 bearer tokens. Both are pure functions of their inputs and
// the configuration handed to their constructors, so they are safe for
// concurrent use.
package auth
