package notifications

import (
	"context"
	"errors"
	"fmt"

	"patitas/internal/domain/collection"

	"github.com/9ssi7/exponent"
)

var ErrNoTokens = errors.New("no push tokens")

// TokenSource is the part of the push token store the notifiers read.
type TokenSource interface {
	ForUsers(ctx context.Context, userIDs []int64) (map[int64][]string, error)
}

// CommentEvent describes a new comment or review on someone's post.
type CommentEvent struct {
	Collection     collection.Name
	PostID         string
	CommenterAlias string
	Rating         *int
}

// SendCommentNotification tells the author of a post that it received a comment.
func SendCommentNotification(ctx context.Context, push PushSender, tokens TokenSource, authorID int64, ev CommentEvent) error {
	tokensMap, err := tokens.ForUsers(ctx, []int64{authorID})
	if err != nil {
		return err
	}
	list := dedupe(tokensMap[authorID])
	if len(list) == 0 {
		return ErrNoTokens
	}

	title, body := commentMessage(ev)
	screen := fmt.Sprintf("%s/%s", ev.Collection, ev.PostID)

	msgs := make([]*exponent.Message, 0, len(list))
	for _, t := range list {
		token := exponent.Token(t)
		msg := &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			// client does router.push(`/${data.screen}`)
			Data: map[string]string{
				"type":       "comment",
				"collection": string(ev.Collection),
				"post_id":    ev.PostID,
				"screen":     screen,
			},
		}
		msgs = append(msgs, msg)
	}

	_, err = push.Publish(ctx, msgs)
	return err
}

func commentMessage(ev CommentEvent) (string, string) {
	switch {
	case ev.Collection == collection.Daycares && ev.Rating != nil:
		return "Nueva reseña", fmt.Sprintf("%s calificó tu guardería con %d estrellas", ev.CommenterAlias, *ev.Rating)
	case ev.Collection == collection.Recipes:
		return "Nuevo comentario", fmt.Sprintf("%s comentó tu receta", ev.CommenterAlias)
	default:
		return "Nuevo comentario", fmt.Sprintf("%s comentó tu consejo", ev.CommenterAlias)
	}
}

// dedupe drops blank and repeated tokens, keeping first-seen order.
func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
