package registration

import "errors"

var (
	// ErrInvalidArgument is returned for malformed requests.
	ErrInvalidArgument = errors.New("registration: invalid argument")
	// ErrRejected is returned when the admission policy evaluates to false.
	ErrRejected = errors.New("registration: rejected by policy")
	// ErrAlreadyExists is returned when the username is already registered.
	ErrAlreadyExists = errors.New("registration: username already exists")
	// ErrNotFound is returned by Lookup for unknown user IDs.
	ErrNotFound = errors.New("registration: user not found")
	// ErrUnauthenticated is returned by Authenticate on a bad username or
	// password.
	ErrUnauthenticated = errors.New("registration: invalid credentials")
)
