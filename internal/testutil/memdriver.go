package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"go.inout.gg/bastion/db/driver"
	"go.inout.gg/bastion/internal/dbsqlc"
)

var (
	_ driver.Driver     = (*MemDriver)(nil)
	_ driver.ExecutorTx = (*memTx)(nil)
	_ dbsqlc.Querier    = (*memQueries)(nil)
)

const uniqueViolationCode = "23505"

// MemDriver is an in-memory driver.Driver for handler tests.
//
// Transactions share the driver state: writes are visible immediately and
// Rollback does not undo them.
type MemDriver struct {
	queries *memQueries

	// PingErr is returned by Ping.
	PingErr error

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// OnBegin, if set, runs at the start of every Begin call.
	OnBegin func()
}

// NewMemDriver returns an empty in-memory driver.
func NewMemDriver() *MemDriver {
	d := &MemDriver{Now: time.Now}
	d.queries = &memQueries{
		driver: d,
		users:  make(map[uuid.UUID]dbsqlc.BastionUser),
	}

	return d
}

func (d *MemDriver) Queries() dbsqlc.Querier { return d.queries }

func (d *MemDriver) Begin(context.Context) (driver.ExecutorTx, error) {
	if d.OnBegin != nil {
		d.OnBegin()
	}

	return &memTx{queries: d.queries}, nil
}

func (d *MemDriver) Ping(context.Context) error { return d.PingErr }

// Users returns a snapshot of the stored rows.
func (d *MemDriver) Users() []dbsqlc.BastionUser {
	d.queries.mu.RLock()
	defer d.queries.mu.RUnlock()

	users := make([]dbsqlc.BastionUser, 0, len(d.queries.users))
	for _, u := range d.queries.users {
		users = append(users, u)
	}

	return users
}

// PutUser stores u as is, bypassing every check.
func (d *MemDriver) PutUser(u dbsqlc.BastionUser) {
	d.queries.mu.Lock()
	defer d.queries.mu.Unlock()

	d.queries.users[u.ID] = u
}

type memTx struct {
	queries *memQueries
}

func (t *memTx) Queries() dbsqlc.Querier      { return t.queries }
func (t *memTx) Commit(context.Context) error   { return nil }
func (t *memTx) Rollback(context.Context) error { return nil }

type memQueries struct {
	driver *MemDriver

	mu    sync.RWMutex
	users map[uuid.UUID]dbsqlc.BastionUser
}

func (q *memQueries) CreateUser(_ context.Context, arg dbsqlc.CreateUserParams) (dbsqlc.BastionUser, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, u := range q.users {
		if u.Email == arg.Email {
			return dbsqlc.BastionUser{}, &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: "bastion_users_email_key",
			}
		}

		if u.Username == arg.Username {
			return dbsqlc.BastionUser{}, &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: "bastion_users_username_key",
			}
		}
	}

	now := q.driver.Now()
	u := dbsqlc.BastionUser{
		ID:          arg.ID,
		Email:       arg.Email,
		Username:    arg.Username,
		Password:    arg.Password,
		FirstName:   arg.FirstName,
		LastName:    arg.LastName,
		IsActive:    arg.IsActive,
		IsVerified:  arg.IsVerified,
		IsSuperuser: arg.IsSuperuser,
		IsStaff:     arg.IsStaff,
		LastLogin:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	q.users[u.ID] = u

	return u, nil
}

func (q *memQueries) FindUserByID(_ context.Context, id uuid.UUID) (dbsqlc.BastionUser, error) {
	return q.find(func(u dbsqlc.BastionUser) bool { return u.ID == id })
}

func (q *memQueries) FindUserByIDForUpdate(ctx context.Context, id uuid.UUID) (dbsqlc.BastionUser, error) {
	return q.FindUserByID(ctx, id)
}

func (q *memQueries) FindUserByEmail(_ context.Context, email string) (dbsqlc.BastionUser, error) {
	return q.find(func(u dbsqlc.BastionUser) bool { return u.Email == email })
}

func (q *memQueries) FindUserByUsername(_ context.Context, username string) (dbsqlc.BastionUser, error) {
	return q.find(func(u dbsqlc.BastionUser) bool { return u.Username == username })
}

func (q *memQueries) FindUserByUsernameOrEmail(
	_ context.Context,
	arg dbsqlc.FindUserByUsernameOrEmailParams,
) (dbsqlc.BastionUser, error) {
	u, err := q.find(func(u dbsqlc.BastionUser) bool { return u.Email == arg.Email })
	if !errors.Is(err, pgx.ErrNoRows) {
		return u, err
	}

	return q.find(func(u dbsqlc.BastionUser) bool { return u.Username == arg.Username })
}

func (q *memQueries) UserEmailExists(ctx context.Context, email string) (bool, error) {
	return q.exists(q.FindUserByEmail(ctx, email))
}

func (q *memQueries) UserUsernameExists(ctx context.Context, username string) (bool, error) {
	return q.exists(q.FindUserByUsername(ctx, username))
}

func (q *memQueries) UpdateUserPassword(
	_ context.Context,
	arg dbsqlc.UpdateUserPasswordParams,
) (dbsqlc.BastionUser, error) {
	return q.update(arg.ID, func(u *dbsqlc.BastionUser) { u.Password = arg.Password })
}

func (q *memQueries) UpdateUserLastLogin(_ context.Context, id uuid.UUID) (dbsqlc.BastionUser, error) {
	now := q.driver.Now()
	return q.update(id, func(u *dbsqlc.BastionUser) { u.LastLogin = now })
}

func (q *memQueries) UpdateUserActive(
	_ context.Context,
	arg dbsqlc.UpdateUserActiveParams,
) (dbsqlc.BastionUser, error) {
	return q.update(arg.ID, func(u *dbsqlc.BastionUser) { u.IsActive = arg.IsActive })
}

func (q *memQueries) UpdateUserVerified(
	_ context.Context,
	arg dbsqlc.UpdateUserVerifiedParams,
) (dbsqlc.BastionUser, error) {
	return q.update(arg.ID, func(u *dbsqlc.BastionUser) { u.IsVerified = arg.IsVerified })
}

func (q *memQueries) find(match func(dbsqlc.BastionUser) bool) (dbsqlc.BastionUser, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, u := range q.users {
		if match(u) {
			return u, nil
		}
	}

	return dbsqlc.BastionUser{}, pgx.ErrNoRows
}

func (q *memQueries) exists(_ dbsqlc.BastionUser, err error) (bool, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}

	return err == nil, err
}

func (q *memQueries) update(id uuid.UUID, f func(*dbsqlc.BastionUser)) (dbsqlc.BastionUser, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	u, ok := q.users[id]
	if !ok {
		return dbsqlc.BastionUser{}, pgx.ErrNoRows
	}

	f(&u)
	u.UpdatedAt = q.driver.Now()
	q.users[id] = u

	return u, nil
}
