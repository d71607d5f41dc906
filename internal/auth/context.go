package auth

import "context"

type contextKey string

const contextKeyUserID contextKey = "userID"

func ContextWithUserID(ctx context.Context, userID UserID) context.Context {
	return context.WithValue(ctx, contextKeyUserID, userID)
}

func UserIDFromContext(ctx context.Context) (UserID, bool) {
	userID, ok := ctx.Value(contextKeyUserID).(UserID)
	return userID, ok
}
