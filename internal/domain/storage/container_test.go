package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"patitas/internal/db"
	"patitas/internal/domain/advice"
	"patitas/internal/domain/collection"
	"patitas/internal/domain/comments"
	"patitas/internal/domain/daycares"
	"patitas/internal/domain/posts"
	"patitas/internal/domain/storage"
	"patitas/internal/domain/users"
	"patitas/internal/realtime"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestContainer connects to POSTGRES_TEST_URL, skipping the test when it is unset.
func newTestContainer(t *testing.T) (*storage.Container, *pgxpool.Pool) {
	t.Helper()

	addr := os.Getenv("POSTGRES_TEST_URL")
	if addr == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	_, err := db.Migrate(addr)
	require.NoError(t, err)

	pool, err := db.New(addr, 5, "1m")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return storage.NewContainer(pool), pool
}

func newUser(t *testing.T, s *storage.Container) *users.User {
	t.Helper()

	u := &users.User{Alias: "sofi", Email: uuid.NewString() + "@example.com"}
	require.NoError(t, u.Password.Set("secret123"))

	err := s.WithAccountTx(t.Context(), func(tx *storage.AccountTx) error {
		if err := tx.Users.Create(t.Context(), u); err != nil {
			return err
		}
		return tx.Users.SaveRefreshToken(t.Context(), u.ID, "refresh")
	})
	require.NoError(t, err)
	return u
}

func TestAccountTxRollsBack(t *testing.T) {
	s, _ := newTestContainer(t)
	u := newUser(t, s)

	dup := &users.User{Alias: "otra", Email: u.Email}
	require.NoError(t, dup.Password.Set("secret123"))
	err := s.WithAccountTx(t.Context(), func(tx *storage.AccountTx) error {
		return tx.Users.Create(t.Context(), dup)
	})
	assert.ErrorIs(t, err, users.ErrDuplicateEmail)

	token, err := s.Users.GetRefreshToken(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "refresh", token)
}

func TestLikesAndCascade(t *testing.T) {
	s, _ := newTestContainer(t)
	author := newUser(t, s)
	fan := newUser(t, s)
	ctx := t.Context()

	a := &advice.Advice{
		Title:       "Agua fresca",
		Alias:       posts.AliasOrDefault(""),
		Category:    "Salud",
		Description: "Cambiá el agua todos los días.",
		PetType:     "Gato",
		AuthorID:    &author.ID,
	}
	require.NoError(t, s.Advice.Create(ctx, a))

	res, err := s.Advice.ToggleLike(ctx, a.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikeCount)

	res, err = s.Advice.ToggleLike(ctx, a.ID, fan.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Zero(t, res.LikeCount)

	got, err := s.PostAuthor(ctx, collection.Advice, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, author.ID, *got)

	c := &comments.Comment{Collection: collection.Advice, ParentID: a.ID, AuthorID: &fan.ID, AuthorAlias: "fan", Text: "Gracias"}
	require.NoError(t, s.Comments.Create(ctx, c))

	assert.ErrorIs(t, s.Advice.Delete(ctx, a.ID, fan.ID), posts.ErrForbidden)
	require.NoError(t, s.Advice.Delete(ctx, a.ID, author.ID))

	list, err := s.Comments.List(ctx, collection.Advice, a.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReviewIncrementsCommentCount(t *testing.T) {
	s, _ := newTestContainer(t)
	author := newUser(t, s)
	ctx := t.Context()

	d := &daycares.Daycare{
		Name:         "Huellitas",
		Neighborhood: "Palermo",
		Address:      "Av. Siempre Viva 742",
		Service:      daycares.Services[0],
		RatingLabel:  daycares.RatingLabels[0],
		PetTreatment: "Excelente",
		AuthorID:     &author.ID,
	}
	require.NoError(t, s.Daycares.Create(ctx, d))

	rating, title := 5, "Genial"
	c := &comments.Comment{
		Collection:  collection.Daycares,
		ParentID:    d.ID,
		AuthorID:    &author.ID,
		AuthorAlias: "sofi",
		Text:        "Los cuidan muy bien",
		Rating:      &rating,
		Title:       &title,
	}
	require.NoError(t, s.Comments.CreateWithCounter(ctx, c))

	got, err := s.Daycares.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentCount)

	missing := *c
	missing.ParentID = d.ID + 1_000_000
	assert.ErrorIs(t, s.Comments.CreateWithCounter(ctx, &missing), comments.ErrNotFound)
}

func TestListenerDeliversChanges(t *testing.T) {
	s, pool := newTestContainer(t)
	author := newUser(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtime.NewHub()
	sub := hub.Subscribe(ctx, realtime.CollectionTopic(collection.Advice))
	go realtime.NewListener(pool, hub, zap.NewNop().Sugar()).Run(ctx)

	// the listener needs a moment to issue LISTEN
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		a := &advice.Advice{Title: "t", Alias: "a", Category: "Salud", Description: "d", PetType: "Perro", AuthorID: &author.ID}
		require.NoError(t, s.Advice.Create(t.Context(), a))

		select {
		case ch := <-sub.C:
			assert.Equal(t, collection.Advice, ch.Collection)
			assert.Equal(t, realtime.KindDocument, ch.Kind)
			return
		case <-tick.C:
		case <-deadline:
			t.Fatal("no change delivered")
		}
	}
}
