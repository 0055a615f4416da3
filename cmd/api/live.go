package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"patitas/internal/domain/collection"
	"patitas/internal/params"
	"patitas/internal/realtime"
)

var heartbeatInterval = 30 * time.Second

type snapshotFunc func(ctx context.Context) (any, error)

// liveListHandler godoc
//
//	@Summary		Live collection listing (SSE)
//	@Description	Server-sent events. Sends the full listing as a "snapshot" event on connect and again after every change to the collection. Accepts the same query as the listing.
//	@Tags			live
//	@Produce		text/event-stream
//	@Success		200
//	@Router			/advice/live [get]
//	@Router			/recipes/live [get]
//	@Router			/daycares/live [get]
func (app *application) liveListHandler(coll collection.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lq, err := params.ParseListQuery(r.URL.Query(), filterKeys(coll)...)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		viewer := getUserFromContext(r)
		if lq.Mine && viewer == nil {
			app.unauthorizedErrorResponse(w, r, errAuthorRequiresLogin)
			return
		}

		app.serveLive(w, r, realtime.CollectionTopic(coll), func(ctx context.Context) (any, error) {
			return app.queryCollection(ctx, coll, lq, viewer)
		})
	}
}

// liveCommentsHandler godoc
//
//	@Summary		Live comments of a post (SSE)
//	@Description	Server-sent events. Sends all comments as a "snapshot" event on connect and after every new comment.
//	@Tags			live
//	@Produce		text/event-stream
//	@Param			id	path	string	true	"Post id"
//	@Success		200
//	@Failure		404	{object}	error
//	@Router			/advice/{id}/comments/live [get]
//	@Router			/recipes/{id}/comments/live [get]
//	@Router			/daycares/{id}/comments/live [get]
func (app *application) liveCommentsHandler(coll collection.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := app.docID(r)
		if err != nil {
			app.notFoundResponse(w, r, err)
			return
		}

		app.serveLive(w, r, realtime.CommentsTopic(coll, id), func(ctx context.Context) (any, error) {
			list, err := app.store.Comments.List(ctx, coll, id)
			if err != nil {
				return nil, err
			}
			return app.commentViews(list), nil
		})
	}
}

// serveLive streams snapshots of topic until the client goes away. The subscription
// is taken before the first snapshot so no change in between is missed, and it is
// always released on return.
func (app *application) serveLive(w http.ResponseWriter, r *http.Request, topic string, snapshot snapshotFunc) {
	rc := http.NewResponseController(w)

	ctx := r.Context()
	sub := app.hub.Subscribe(ctx, topic)
	defer app.hub.Unsubscribe(sub.ID)

	first, err := snapshot(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// streams outlive the server write timeout
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		app.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)

	app.logger.Infow("live client connected", "topic", topic, "subscriber_id", sub.ID)
	defer app.logger.Infow("live client disconnected", "topic", topic, "subscriber_id", sub.ID)

	if err := writeEvent(w, rc, "snapshot", first); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case _, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := snapshot(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				app.logger.Errorw("live snapshot failed", "topic", topic, "error", err)
				if err := writeEvent(w, rc, "error", map[string]string{"message": "snapshot failed"}); err != nil {
					return
				}
				continue
			}
			if err := writeEvent(w, rc, "snapshot", data); err != nil {
				return
			}

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case <-sub.Done:
			return

		case <-ctx.Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return rc.Flush()
}
