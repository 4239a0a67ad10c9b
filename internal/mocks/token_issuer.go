package mocks

import (
	"github.com/lifeline/lifeline-api/internal/model"
)

// TokenIssuer is a stub token issuer. Nil funcs succeed with a fixed token.
type TokenIssuer struct {
	ReadyFunc func() error
	IssueFunc func(user *model.User) (string, error)
}

// NewTokenIssuer returns a TokenIssuer that always succeeds.
func NewTokenIssuer() *TokenIssuer {
	return &TokenIssuer{}
}

// Ready calls ReadyFunc when set.
func (m *TokenIssuer) Ready() error {
	if m.ReadyFunc != nil {
		return m.ReadyFunc()
	}
	return nil
}

// Issue calls IssueFunc when set, else returns a token derived from the user id.
func (m *TokenIssuer) Issue(user *model.User) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(user)
	}
	return "token_" + user.ID.Hex(), nil
}
