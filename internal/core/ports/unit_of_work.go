package ports

import (
	"context"
	"database/sql"
	"errors"
)

// ErrConcurrencyConflict is returned (wrapped) by store operations when the
// store aborts a transaction because a concurrent transaction touched the
// same rows, e.g. a serialization failure under Serializable isolation.
// For the claim operation this is a normal lost-race outcome, not a system
// error.
var ErrConcurrencyConflict = errors.New("concurrent transaction conflict")

// IsolationLevel is the transaction isolation requested from the order store.
// The claim transaction must run at Serializable: it is the store's isolation
// guarantee, not any in-process lock, that prevents two concurrent claims
// from both observing an unassigned order and both succeeding. Downgrading
// the claim transaction below Serializable reintroduces the double-claim
// race and fails the concurrency integration test.
type IsolationLevel int

const (
	// IsolationDefault uses the store's default isolation level.
	IsolationDefault IsolationLevel = iota

	// IsolationReadCommitted is sufficient for single-statement writes.
	IsolationReadCommitted

	// IsolationRepeatableRead guards reads against concurrent modification.
	IsolationRepeatableRead

	// IsolationSerializable makes concurrent transactions behave as if
	// executed in some serial order. Required for the claim transaction.
	IsolationSerializable
)

// SQLTxIsolation maps the level onto database/sql's isolation constants.
func (l IsolationLevel) SQLTxIsolation() sql.IsolationLevel {
	switch l {
	case IsolationReadCommitted:
		return sql.LevelReadCommitted
	case IsolationRepeatableRead:
		return sql.LevelRepeatableRead
	case IsolationSerializable:
		return sql.LevelSerializable
	default:
		return sql.LevelDefault
	}
}

// String implements fmt.Stringer.
func (l IsolationLevel) String() string {
	return l.SQLTxIsolation().String()
}

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and access to transaction-bound
// repositories. Client code must explicitly manage the transaction
// lifecycle; a transaction is opened and closed (committed or rolled back)
// entirely within a single operation and never held across requests.
type UnitOfWork interface {
	// Begin starts a new database transaction at the given isolation level.
	Begin(ctx context.Context, level IsolationLevel) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction started by Begin().
	OrderRepository() OrderRepository
}
