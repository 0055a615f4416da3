package notifications

import (
	"context"
	"testing"

	"patitas/internal/domain/collection"

	"github.com/9ssi7/exponent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePush struct {
	sent []*exponent.Message
}

func (f *fakePush) Publish(_ context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	f.sent = append(f.sent, msgs...)
	return nil, nil
}

type fakeTokens map[int64][]string

func (f fakeTokens) ForUsers(_ context.Context, ids []int64) (map[int64][]string, error) {
	out := make(map[int64][]string)
	for _, id := range ids {
		out[id] = f[id]
	}
	return out, nil
}

func TestSendCommentNotification(t *testing.T) {
	push := &fakePush{}
	tokens := fakeTokens{7: {"ExponentPushToken[a]", "ExponentPushToken[a]", "", "ExponentPushToken[b]"}}

	err := SendCommentNotification(context.Background(), push, tokens, 7, CommentEvent{
		Collection:     collection.Recipes,
		PostID:         "k5Q",
		CommenterAlias: "sofi",
	})
	require.NoError(t, err)
	require.Len(t, push.sent, 2)

	msg := push.sent[0]
	assert.Equal(t, "Nuevo comentario", msg.Title)
	assert.Equal(t, "sofi comentó tu receta", msg.Body)
	require.Len(t, msg.To, 1)
	assert.Equal(t, exponent.Token("ExponentPushToken[a]"), *msg.To[0])
}

func TestSendCommentNotificationNoTokens(t *testing.T) {
	push := &fakePush{}
	err := SendCommentNotification(context.Background(), push, fakeTokens{}, 7, CommentEvent{Collection: collection.Advice})
	assert.ErrorIs(t, err, ErrNoTokens)
	assert.Empty(t, push.sent)
}

func TestCommentMessageReview(t *testing.T) {
	rating := 4
	title, body := commentMessage(CommentEvent{Collection: collection.Daycares, CommenterAlias: "tomi", Rating: &rating})
	assert.Equal(t, "Nueva reseña", title)
	assert.Equal(t, "tomi calificó tu guardería con 4 estrellas", body)
}
