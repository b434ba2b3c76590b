package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pokehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Upsert inserts or refreshes a user's favorite.
func (r *Repo) Upsert(ctx context.Context, fav models.Favorite) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_favorites (user_id, pokemon, note, added_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, pokemon) DO UPDATE SET
			note = excluded.note,
			added_at = CURRENT_TIMESTAMP
	`, fav.UserID, fav.Pokemon, fav.Note)
	if err != nil {
		return fmt.Errorf("upsert favorite: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, pokemon string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM user_favorites
		WHERE user_id = ? AND pokemon = ?
	`, userID, pokemon)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) List(ctx context.Context, userID string, limit, offset int) ([]models.Favorite, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_favorites WHERE user_id = ?
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, pokemon, note, added_at
		FROM user_favorites
		WHERE user_id = ?
		ORDER BY added_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]models.Favorite, 0, limit)
	for rows.Next() {
		var f models.Favorite
		var added time.Time
		if err := rows.Scan(&f.UserID, &f.Pokemon, &f.Note, &added); err != nil {
			return nil, 0, fmt.Errorf("scan favorite row: %w", err)
		}
		f.AddedAt = added
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	return out, total, nil
}

func (r *Repo) Get(ctx context.Context, userID, pokemon string) (*models.Favorite, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT user_id, pokemon, note, added_at
		FROM user_favorites
		WHERE user_id = ? AND pokemon = ?
	`, userID, pokemon)

	var f models.Favorite
	var added time.Time
	if err := row.Scan(&f.UserID, &f.Pokemon, &f.Note, &added); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	f.AddedAt = added
	return &f, nil
}
