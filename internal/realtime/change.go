// Package realtime fans out row changes announced by Postgres (LISTEN/NOTIFY) to the
// live list subscribers of this process.
package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"

	"patitas/internal/domain/collection"
)

const (
	KindDocument = "document"
	KindComment  = "comment"
)

// Change is the payload of the notify_patitas_change trigger.
type Change struct {
	Kind       string          `json:"kind"`
	Collection collection.Name `json:"collection"`
	ParentID   int64           `json:"parent_id"`
	ID         int64           `json:"id"`
	Op         string          `json:"op"`
}

func ParseChange(payload string) (Change, error) {
	var c Change
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return Change{}, fmt.Errorf("decode change: %w", err)
	}
	if !c.Collection.Valid() {
		return Change{}, fmt.Errorf("decode change: unknown collection %q", c.Collection)
	}
	if c.Kind != KindDocument && c.Kind != KindComment {
		return Change{}, fmt.Errorf("decode change: unknown kind %q", c.Kind)
	}
	return c, nil
}

// Topic is the hub topic subscribers of this change listen on.
func (c Change) Topic() string {
	if c.Kind == KindComment {
		return CommentsTopic(c.Collection, c.ParentID)
	}
	return CollectionTopic(c.Collection)
}

func CollectionTopic(coll collection.Name) string {
	return string(coll)
}

func CommentsTopic(coll collection.Name, parentID int64) string {
	return string(coll) + "/" + strconv.FormatInt(parentID, 10) + "/" + string(collection.SubComments)
}
