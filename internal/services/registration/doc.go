// Package registration implements user sign-up on top of the ID generator.
//
// A registration validates the request, evaluates an optional CEL admission
// policy, refuses duplicate usernames before drawing any IDs, then draws two
// IDs: one becomes the user ID and the decimal form of the other salts the
// password hash. The user and profile rows are written atomically.
package registration
