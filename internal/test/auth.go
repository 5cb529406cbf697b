package test

import (
	"errors"

	pkgAuth "github.com/velikanov/docflow/internal/pkg/auth"
)

// HasherStub hashes passwords by prefixing, good enough for round-trip
// assertions without bcrypt cost.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

var _ pkgAuth.PasswordHasher = HasherStub{}

// Hash returns "hash:"+password unless overridden.
func (s HasherStub) Hash(password string) (string, error) {
	if s.HashFn != nil {
		return s.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare accepts hashes produced by Hash.
func (s HasherStub) Compare(hash string, password string) error {
	if s.CompareFn != nil {
		return s.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

// StrategyStub fakes the token strategy.
type StrategyStub struct {
	IssueFn func(pkgAuth.Claims) (string, error)
	ParseFn func(string) (pkgAuth.Claims, error)
}

var _ pkgAuth.Strategy = &StrategyStub{}

// IssueToken encodes the claims into a predictable token.
func (s *StrategyStub) IssueToken(claims pkgAuth.Claims) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(claims)
	}
	return "token:" + claims.UserID + ":" + claims.Role, nil
}

// ParseToken returns fixed claims unless overridden.
func (s *StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: "u-1", Role: "manager"}, nil
}

// Name identifies the stub strategy.
func (s *StrategyStub) Name() string { return "stub" }
