package notifications

import (
	"context"
	"fmt"

	"github.com/9ssi7/exponent"
)

// PushSender delivers Expo push messages.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
}

// maxBatch is the most messages Expo accepts in one request.
const maxBatch = 100

type expoPublisher interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
}

type ExpoAdapter struct {
	client expoPublisher
}

func NewExpoAdapter(c *exponent.Client) *ExpoAdapter {
	return &ExpoAdapter{client: c}
}

// Publish sends msgs in batches of at most maxBatch. It stops at the first failed
// batch and returns the tickets collected so far.
func (a *ExpoAdapter) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	out := make([]*exponent.MessageResponse, 0, len(msgs))
	for start := 0; start < len(msgs); start += maxBatch {
		end := min(start+maxBatch, len(msgs))
		res, err := a.client.Publish(ctx, msgs[start:end])
		if err != nil {
			return out, fmt.Errorf("expo batch %d-%d: %w", start, end, err)
		}
		out = append(out, res...)
	}
	return out, nil
}
