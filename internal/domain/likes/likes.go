package likes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"patitas/internal/db"
	"patitas/internal/domain/collection"
	"patitas/internal/domain/posts"
	"patitas/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound          = posts.ErrNotFound
	QueryTimeoutDuration = time.Second * 5
)

// Result is the like state of a document after a toggle.
type Result struct {
	Liked     bool    `json:"liked"`
	LikeCount int     `json:"like_count"`
	LikedBy   []int64 `json:"-"`
}

// Flip toggles userID's membership in likedBy and reports whether the user now likes
// the document. The input slice is not modified.
func Flip(likedBy []int64, userID int64) ([]int64, bool) {
	out := make([]int64, 0, len(likedBy)+1)
	found := false
	for _, id := range likedBy {
		if id == userID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if found {
		return out, false
	}
	return append(out, userID), true
}

// Contains reports whether userID is in likedBy.
func Contains(likedBy []int64, userID int64) bool {
	for _, id := range likedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Toggle flips userID's like on the document inside a transaction. The row is locked
// for the duration, so concurrent toggles on the same document serialize and
// like_count always equals the size of liked_by.
func Toggle(ctx context.Context, q dbx.DB, coll collection.Name, docID, userID int64) (*Result, error) {
	if !coll.Valid() {
		return nil, fmt.Errorf("unknown collection %q", coll)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var res Result
	err := db.WithTx(ctx, q, func(tx pgx.Tx) error {
		var likedBy []int64
		sel := fmt.Sprintf(`SELECT liked_by FROM %s WHERE id = $1 FOR UPDATE`, coll)
		if err := tx.QueryRow(ctx, sel, docID).Scan(&likedBy); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		updated, liked := Flip(likedBy, userID)

		upd := fmt.Sprintf(`
			UPDATE %s
			SET liked_by = $1, like_count = $2
			WHERE id = $3`, coll)
		if _, err := tx.Exec(ctx, upd, updated, len(updated), docID); err != nil {
			return err
		}

		res = Result{Liked: liked, LikeCount: len(updated), LikedBy: updated}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
