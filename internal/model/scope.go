package model

// Scope carries the identity of the authenticated caller through the
// request lifecycle. It is populated by the identity middleware from
// headers set by the upstream auth gateway.
type Scope struct {
	UserID string
}
