package context

import (
	"context"
	"strings"

	"keepstock/models"
)

type sessionKey struct{}

func NewContextWithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}

// ScopeBranch returns the branch a screen works on. Users bound to a branch
// always get their own; others get requested, where "" means every branch.
func ScopeBranch(session models.Session, requested string) string {
	if session.User.Branch != "" {
		return session.User.Branch
	}
	return strings.TrimSpace(requested)
}
