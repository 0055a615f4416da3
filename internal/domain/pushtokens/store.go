package pushtokens

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"patitas/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Save(ctx context.Context, userID int64, token string, deviceInfo json.RawMessage) error
	Remove(ctx context.Context, userID int64, token string) error
	ForUsers(ctx context.Context, userIDs []int64) (map[int64][]string, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

// Save registers token for userID. A device that signs into another account hands
// its token over, so the token is taken away from any other user in the same batch.
func (r *Repository) Save(ctx context.Context, userID int64, token string, deviceInfo json.RawMessage) error {
	if !Valid(token) {
		return ErrInvalidToken
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	b := &pgx.Batch{}
	b.Queue(`DELETE FROM user_push_tokens WHERE expo_push_token = $1 AND user_id <> $2`, token, userID)
	b.Queue(`
		INSERT INTO user_push_tokens (user_id, expo_push_token, device_info, last_updated)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, expo_push_token)
		DO UPDATE SET device_info = EXCLUDED.device_info, last_updated = NOW()`,
		userID, token, deviceInfo)

	br := r.db.SendBatch(ctx, b)
	if _, err := br.Exec(); err != nil {
		br.Close()
		return fmt.Errorf("release push token: %w", err)
	}
	if _, err := br.Exec(); err != nil {
		br.Close()
		return fmt.Errorf("save push token: %w", err)
	}
	return br.Close()
}

// Remove forgets token for userID. Removing an unknown token is not an error.
func (r *Repository) Remove(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM user_push_tokens WHERE user_id = $1 AND expo_push_token = $2`, userID, token)
	return err
}

// ForUsers groups the registered tokens of userIDs by user.
func (r *Repository) ForUsers(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT user_id, expo_push_token FROM user_push_tokens WHERE user_id = ANY($1) ORDER BY last_updated DESC`,
		userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			uid   int64
			token string
		)
		if err := rows.Scan(&uid, &token); err != nil {
			return nil, err
		}
		out[uid] = append(out[uid], token)
	}
	return out, rows.Err()
}

// Prune deletes tokens not refreshed within olderThan and reports how many went.
func (r *Repository) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_push_tokens WHERE last_updated < NOW() - make_interval(secs => $1)`,
		olderThan.Seconds())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
