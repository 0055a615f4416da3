package main

import (
	"context"
	"time"
)

// tokens untouched for this long belong to uninstalled apps
const stalePushTokenAge = 90 * 24 * time.Hour

func (app *application) pruneStalePushTokensDaily(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			n, err := app.store.PushTokens.Prune(ctx, stalePushTokenAge)
			if err != nil {
				app.logger.Errorw("pruning stale push tokens failed", "error", err)
			} else {
				app.logger.Infow("pruned stale push tokens", "deleted", n)
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
