package main

import (
	"net/http"
	"testing"

	"patitas/internal/domain/collection"
	"patitas/internal/domain/daycares"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func TestDaycareReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	_, bearer := env.signIn(t, "sofi", "sofi@example.com")

	env.daycares.docs[1] = &daycares.Daycare{ID: 1, Name: "Huellitas"}
	env.comments.addParent(collection.Daycares, 1)
	path := "/v1/daycares/" + env.app.ids.Encode(1) + "/comments"

	tests := []struct {
		name    string
		payload CreateCommentPayload
	}{
		{"missing rating", CreateCommentPayload{Text: "Muy buena atención", Title: strPtr("Genial")}},
		{"missing title", CreateCommentPayload{Text: "Muy buena atención", Rating: intPtr(5)}},
		{"blank text", CreateCommentPayload{Text: "  ", Rating: intPtr(5), Title: strPtr("Genial")}},
		{"rating out of range", CreateCommentPayload{Text: "Muy buena atención", Rating: intPtr(6), Title: strPtr("Genial")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, path, bearer, tt.payload)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	stored, counted := env.comments.calls()
	assert.Zero(t, stored)
	assert.Zero(t, counted)

	rr := env.do(t, http.MethodPost, path, bearer, CreateCommentPayload{Text: "Muy buena atención", Rating: intPtr(4), Title: strPtr("Genial")})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var got commentView
	decodeData(t, rr, &got)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
	assert.Equal(t, "sofi", got.AuthorAlias)

	stored, counted = env.comments.calls()
	assert.Equal(t, 1, stored)
	assert.Equal(t, 1, counted)
}

func TestAdviceComment(t *testing.T) {
	env := newTestEnv(t)
	_, author := env.signIn(t, "sofi", "sofi@example.com")
	_, bearer := env.signIn(t, "Ana María", "ana.maria@example.com")
	created := createAdvice(t, env, author, validAdvice())

	id, err := env.app.ids.Decode(created.ID)
	require.NoError(t, err)
	env.comments.addParent(collection.Advice, id)
	path := "/v1/advice/" + created.ID + "/comments"

	rr := env.do(t, http.MethodPost, path, "", CreateCommentPayload{Text: "Gracias"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// rating and title only apply to reviews
	rr = env.do(t, http.MethodPost, path, bearer, CreateCommentPayload{Text: " Gracias ", Rating: intPtr(5), Title: strPtr("x")})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var got commentView
	decodeData(t, rr, &got)
	assert.Equal(t, "ana.maria", got.AuthorAlias)
	assert.Equal(t, "Gracias", got.Text)
	assert.Nil(t, got.Rating)
	assert.Nil(t, got.Title)

	_, counted := env.comments.calls()
	assert.Zero(t, counted)

	rr = env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []commentView
	decodeData(t, rr, &list)
	require.Len(t, list, 1)
	assert.Equal(t, got.ID, list[0].ID)

	rr = env.do(t, http.MethodPost, "/v1/advice/"+env.app.ids.Encode(999)+"/comments", bearer, CreateCommentPayload{Text: "Hola"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
