// Package posts holds the persistence rules shared by the consejos, recetas and
// guarderias collections: ownership checks, partial updates, cascading deletes and
// list filtering.
package posts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"patitas/internal/db"
	"patitas/internal/domain/collection"
	"patitas/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrForbidden         = errors.New("only the author can modify this document")
	ErrNoFields          = errors.New("no fields to update")
	QueryTimeoutDuration = time.Second * 5
)

// DefaultAlias is stored when an author leaves the alias blank.
const DefaultAlias = "Anónimo"

func AliasOrDefault(alias string) string {
	if a := strings.TrimSpace(alias); a != "" {
		return a
	}
	return DefaultAlias
}

// LockOwned locks the document row for the rest of tx and checks that userID wrote it.
func LockOwned(ctx context.Context, tx pgx.Tx, coll collection.Name, id, userID int64) error {
	if !coll.Valid() {
		return fmt.Errorf("unknown collection %q", coll)
	}

	var authorID *int64
	query := fmt.Sprintf(`SELECT author_id FROM %s WHERE id = $1 FOR UPDATE`, coll)
	if err := tx.QueryRow(ctx, query, id).Scan(&authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if authorID == nil || *authorID != userID {
		return ErrForbidden
	}
	return nil
}

// Update applies column updates to a document owned by userID. Only columns present in
// allowed may be set.
func Update(ctx context.Context, q dbx.DB, coll collection.Name, id, userID int64, updates map[string]any, allowed map[string]bool) error {
	if len(updates) == 0 {
		return ErrNoFields
	}

	// stable column order keeps the statement cacheable
	fields := make([]string, 0, len(updates))
	for field := range updates {
		if !allowed[field] {
			return fmt.Errorf("invalid field name: %s", field)
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	setClauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, field := range fields {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field, i+1))
		args = append(args, updates[field])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d",
		coll, strings.Join(setClauses, ", "), len(args))

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return db.WithTx(ctx, q, func(tx pgx.Tx) error {
		if err := LockOwned(ctx, tx, coll, id, userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("update %s: %w", coll, err)
		}
		return nil
	})
}

// Delete removes a document owned by userID together with its comentarios
// sub-collection, in one transaction.
func Delete(ctx context.Context, q dbx.DB, coll collection.Name, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return db.WithTx(ctx, q, func(tx pgx.Tx) error {
		if err := LockOwned(ctx, tx, coll, id, userID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM comentarios WHERE collection = $1 AND parent_id = $2`, string(coll), id); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}

		query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, coll)
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return fmt.Errorf("delete %s: %w", coll, err)
		}
		return nil
	})
}

// Filter narrows a collection listing. Equals maps column names to exact values; empty
// values are ignored.
type Filter struct {
	AuthorID *int64
	Equals   map[string]string
	Limit    int
	Offset   int
}

// Where renders the filter as a WHERE clause (possibly empty) and its arguments.
// Columns not in allowed are rejected.
func Where(f Filter, allowed map[string]bool) (string, []any, error) {
	var conds []string
	var args []any

	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		conds = append(conds, fmt.Sprintf("author_id = $%d", len(args)))
	}

	cols := make([]string, 0, len(f.Equals))
	for col, v := range f.Equals {
		if v == "" {
			continue
		}
		if !allowed[col] {
			return "", nil, fmt.Errorf("invalid filter: %s", col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		args = append(args, f.Equals[col])
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args, nil
}

// Page appends LIMIT/OFFSET placeholders for f to a query built by Where.
func Page(f Filter, args []any) (string, []any) {
	limit := f.Limit
	if limit <= 0 {
		limit = 15
	}
	args = append(args, limit, f.Offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

// Author returns the author of a document; nil when the account was deleted.
func Author(ctx context.Context, q dbx.Querier, coll collection.Name, id int64) (*int64, error) {
	if !coll.Valid() {
		return nil, fmt.Errorf("unknown collection %q", coll)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var authorID *int64
	query := fmt.Sprintf(`SELECT author_id FROM %s WHERE id = $1`, coll)
	if err := q.QueryRow(ctx, query, id).Scan(&authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return authorID, nil
}
