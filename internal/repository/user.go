package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"earnhub_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

type user struct {
	ID            uuid.UUID `db:"id"`
	SubjectID     string    `db:"subject_id"`
	Email         string    `db:"email"`
	Username      string    `db:"username"`
	ReferralCode  *string   `db:"referral_code"`
	PointsBalance int64     `db:"points_balance"`
	CreatedAt     time.Time `db:"created_at"`
}

func (u *user) toModel() *model.User {
	return &model.User{
		ID:            u.ID,
		SubjectID:     u.SubjectID,
		Email:         u.Email,
		Username:      u.Username,
		ReferralCode:  u.ReferralCode,
		PointsBalance: u.PointsBalance,
		CreatedAt:     u.CreatedAt,
	}
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (r *Repository) CreateUser(ctx context.Context, u *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"id":             u.ID,
			"subject_id":     u.SubjectID,
			"email":          u.Email,
			"username":       u.Username,
			"referral_code":  u.ReferralCode,
			"points_balance": u.PointsBalance,
			"created_at":     u.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmailOrSubject matches either key: a pre-seeded record may carry
// only an email, a resolved one always carries both.
func (r *Repository) GetUserByEmailOrSubject(ctx context.Context, email, subjectID string) (*model.User, error) {
	var u user
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Or{
			squirrel.Eq{"email": email},
			squirrel.Eq{"subject_id": subjectID},
		}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u.toModel(), nil
}

func (r *Repository) GetUserBySubjectID(ctx context.Context, subjectID string) (*model.User, error) {
	var u user
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"subject_id": subjectID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u.toModel(), nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u user
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u.toModel(), nil
}

func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var one int
	query, args, err := squirrel.
		Select("1").
		From("users").
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	err = r.db.GetContext(ctx, &one, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to probe username: %w", err)
	}

	return true, nil
}

// ClaimReferralCode stores the candidate only if no code has been written
// yet, then returns whatever is stored. Two racing generators both get the
// single persisted code back.
func (r *Repository) ClaimReferralCode(ctx context.Context, userID uuid.UUID, candidate string) (string, error) {
	var stored string

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		updateQuery, updateArgs, err := squirrel.
			Update("users").
			Set("referral_code", candidate).
			Where(squirrel.And{
				squirrel.Eq{"id": userID},
				squirrel.Eq{"referral_code": nil},
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build referral code update query: %w", err)
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("failed to update referral code: %w", err)
		}

		selectQuery, selectArgs, err := squirrel.
			Select("referral_code").
			From("users").
			Where(squirrel.Eq{"id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		err = tx.GetContext(ctx, &stored, selectQuery, selectArgs...)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return stored, nil
}
