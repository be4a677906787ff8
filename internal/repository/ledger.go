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
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type transaction struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Points      decimal.Decimal `db:"points"`
	Type        string          `db:"type"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r *Repository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	query, args, err := squirrel.
		Select("*").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []transaction
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	txs := make([]model.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = model.Transaction{
			ID:          row.ID,
			UserID:      row.UserID,
			Points:      row.Points,
			Type:        model.TransactionType(row.Type),
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		}
	}

	return txs, nil
}

func (r *Repository) CountTaskCompletions(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.countWhere(ctx, "task_completions", squirrel.Eq{"user_id": userID})
}

func (r *Repository) CountReferrals(ctx context.Context, referrerID uuid.UUID) (int, error) {
	return r.countWhere(ctx, "referrals", squirrel.Eq{"referrer_id": referrerID})
}

func (r *Repository) countWhere(ctx context.Context, table string, pred squirrel.Eq) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(table).
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

// CreateCredit records one fulfilled task: a credit ledger row, a completion
// row and the balance bump, all in one store transaction.
func (r *Repository) CreateCredit(ctx context.Context, userID uuid.UUID, points int64, taskName string) error {
	now := time.Now().UTC()

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		txQuery, txArgs, err := squirrel.
			Insert("transactions").
			SetMap(map[string]interface{}{
				"id":          uuid.New(),
				"user_id":     userID,
				"points":      decimal.NewFromInt(points),
				"type":        string(model.TransactionCredit),
				"description": taskName,
				"created_at":  now,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build transaction insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, txQuery, txArgs...)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		completionQuery, completionArgs, err := squirrel.
			Insert("task_completions").
			SetMap(map[string]interface{}{
				"id":         uuid.New(),
				"user_id":    userID,
				"task_name":  taskName,
				"created_at": now,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build task completion insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, completionQuery, completionArgs...)
		if err != nil {
			return fmt.Errorf("failed to insert task completion: %w", err)
		}

		updateQuery, updateArgs, err := squirrel.
			Update("users").
			Set("points_balance", squirrel.Expr("points_balance + ?", points)).
			Where(squirrel.Eq{"id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build balance update query: %w", err)
		}

		res, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("failed to update points balance: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}

		return nil
	})
}
