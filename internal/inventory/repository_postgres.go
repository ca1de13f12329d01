package inventory

import (
	"context"

	"foodbank/internal/distribution"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, item *Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	query := `
		INSERT INTO inventory_items (
			id,
			owner_id,
			type,
			category,
			quantity,
			expiration_date,
			calories,
			total_fat,
			protein,
			carbohydrates,
			sugars,
			sodium,
			weekly_customers
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`

	return r.db.QueryRow(
		ctx,
		query,
		item.ID,
		item.OwnerID,
		item.Type,
		string(item.Category),
		item.Quantity,
		item.ExpirationDate,
		item.Nutrition.Calories,
		item.Nutrition.TotalFat,
		item.Nutrition.Protein,
		item.Nutrition.Carbohydrates,
		item.Nutrition.Sugars,
		item.Nutrition.Sodium,
		item.WeeklyCustomers,
	).Scan(&item.CreatedAt)
}

// --------------------------------------------------
// List items owned by a user
// --------------------------------------------------
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Item, error) {
	query := `
		SELECT
			id,
			owner_id,
			type,
			category,
			quantity,
			expiration_date,
			calories,
			total_fat,
			protein,
			carbohydrates,
			sugars,
			sodium,
			weekly_customers,
			created_at
		FROM inventory_items
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		var it Item
		var category string
		if err := rows.Scan(
			&it.ID,
			&it.OwnerID,
			&it.Type,
			&category,
			&it.Quantity,
			&it.ExpirationDate,
			&it.Nutrition.Calories,
			&it.Nutrition.TotalFat,
			&it.Nutrition.Protein,
			&it.Nutrition.Carbohydrates,
			&it.Nutrition.Sugars,
			&it.Nutrition.Sodium,
			&it.WeeklyCustomers,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		it.Category = distribution.Category(category)
		items = append(items, &it)
	}

	return items, rows.Err()
}

// --------------------------------------------------
// Delete (owner only)
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM inventory_items
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Weekly customers for all of a user's items
// --------------------------------------------------
func (r *PostgresRepository) UpdateWeeklyCustomers(ctx context.Context, ownerID string, weekly int) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_items
		SET weekly_customers = $1
		WHERE owner_id = $2
	`, weekly, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
