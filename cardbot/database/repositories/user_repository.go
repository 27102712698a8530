package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
)

// LedgerRepository stores users and their inventory.
type LedgerRepository struct {
	*BaseRepository
}

func NewLedgerRepository(db *bun.DB) *LedgerRepository {
	return &LedgerRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *LedgerRepository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("u.id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "user", userID, err)
	}
	return user, nil
}

func (r *LedgerRepository) CreateUser(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if err := ensureUser(ctx, r.db, userID); err != nil {
		return nil, r.HandleErrorWithID("create", "user", userID, err)
	}
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("u.id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("create", "user", userID, err)
	}
	return user, nil
}

func ensureUser(ctx context.Context, db bun.IDB, userID string) error {
	_, err := db.NewInsert().
		Model(&models.User{ID: userID}).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	return err
}

// swapLastOpened is a compare-and-swap on users.last_opened. A zero expected
// value matches a NULL column.
func swapLastOpened(ctx context.Context, db bun.IDB, userID string, expected, openedAt time.Time) (bool, error) {
	q := db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_opened = ?", openedAt.Truncate(time.Microsecond)).
		Where("id = ?", userID)
	if expected.IsZero() {
		q = q.Where("last_opened IS NULL")
	} else {
		q = q.Where("last_opened = ?", expected)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
