// Package refreshtokens stores each user's ordered list of currently valid
// refresh tokens. Issuance order is the row id.
package refreshtokens

import "context"

// Repository manages the per-user refresh-token list. Mutations are
// expected to run inside a transaction that holds the owner's row lock.
type Repository interface {
	// Append adds token to the end of userID's list.
	Append(ctx context.Context, userID string, token string) error

	// ListByUser returns userID's tokens, oldest first.
	ListByUser(ctx context.Context, userID string) ([]string, error)

	// Delete removes token from userID's list and reports whether it was there.
	Delete(ctx context.Context, userID string, token string) (bool, error)

	// TrimToLatest keeps only the keep most recently issued tokens.
	TrimToLatest(ctx context.Context, userID string, keep int) error
}
