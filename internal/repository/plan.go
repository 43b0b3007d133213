package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zgrigoryan/Meal-Planner/internal/models"
)

type PlanRepository interface {
	Replace(ctx context.Context, plan models.Plan) error
	FindAll(ctx context.Context) ([]models.PlanEntry, error)
	FindLatest(ctx context.Context) (models.Plan, error)
}

type SQLitePlanRepository struct {
	database *sql.DB
}

func NewPlanRepository(database *sql.DB) *SQLitePlanRepository {
	return &SQLitePlanRepository{database: database}
}

const slotOrder = `ORDER BY
	CASE day WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3
		WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 WHEN 'Saturday' THEN 6 WHEN 'Sunday' THEN 7 END,
	CASE meal_category WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 END`

// Replace deletes the stored plan and inserts the new entries in a single
// transaction, so readers see either the old plan or the new one.
func (repository *SQLitePlanRepository) Replace(ctx context.Context, plan models.Plan) error {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning plan transaction: %w", err)
	}
	defer transaction.Rollback()

	if _, err := transaction.ExecContext(ctx, "DELETE FROM plan"); err != nil {
		return fmt.Errorf("clearing plan: %w", err)
	}

	statement, err := transaction.PrepareContext(ctx,
		`INSERT INTO plan (day, meal_category, meal_id, meal_option, plan_id, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing plan insert: %w", err)
	}
	defer statement.Close()

	for _, entry := range plan.Entries {
		if _, err := statement.ExecContext(ctx,
			entry.Day, entry.Category, entry.MealID, entry.MealName, plan.ID, plan.CommittedAt,
		); err != nil {
			return fmt.Errorf("inserting plan entry %s: %w", entry.Slot(), err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("committing plan: %w", err)
	}
	return nil
}

func (repository *SQLitePlanRepository) FindAll(ctx context.Context) ([]models.PlanEntry, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT day, meal_category, meal_id, meal_option FROM plan "+slotOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("finding plan entries: %w", err)
	}
	defer rows.Close()

	var entries []models.PlanEntry
	for rows.Next() {
		var entry models.PlanEntry
		if err := rows.Scan(&entry.Day, &entry.Category, &entry.MealID, &entry.MealName); err != nil {
			return nil, fmt.Errorf("scanning plan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// FindLatest returns the stored plan with its revision metadata. It returns
// an error wrapping sql.ErrNoRows when no plan has been committed.
func (repository *SQLitePlanRepository) FindLatest(ctx context.Context) (models.Plan, error) {
	var plan models.Plan
	var committedAt time.Time
	err := repository.database.QueryRowContext(ctx,
		"SELECT plan_id, committed_at FROM plan LIMIT 1",
	).Scan(&plan.ID, &committedAt)
	if err != nil {
		return models.Plan{}, fmt.Errorf("finding plan: %w", err)
	}
	plan.CommittedAt = committedAt

	plan.Entries, err = repository.FindAll(ctx)
	if err != nil {
		return models.Plan{}, err
	}
	return plan, nil
}
