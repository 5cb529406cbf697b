package auth

import "time"

// Claims is the identity a token carries: the account id and its role.
// Handlers use the role to attribute history entries; the admin surface
// uses it for coarse checks.
type Claims struct {
	UserID string
	Role   string
}

type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
