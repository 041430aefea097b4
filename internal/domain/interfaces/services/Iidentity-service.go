package Iservices

import "time"

// IIdentityService resolves an opaque credential into a user identity.
// Channel registration happens only after Verify succeeds.
type IIdentityService interface {
	Verify(token string) (string, error)
	Issue(userID string, ttl time.Duration) (string, error)
}
