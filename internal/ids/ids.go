// Package ids turns sequential row ids into opaque public document ids.
package ids

import (
	"errors"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalid = errors.New("invalid id")

type Codec struct {
	h *hashids.HashID
}

func New(salt string, minLength int) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

// Encode returns the public id for a row id. Row ids are always positive.
func (c *Codec) Encode(id int64) string {
	s, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return ""
	}
	return s
}

func (c *Codec) EncodeMany(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Encode(id))
	}
	return out
}

func (c *Codec) Decode(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalid
	}
	nums, err := c.h.DecodeInt64WithError(s)
	if err != nil || len(nums) != 1 || nums[0] <= 0 {
		return 0, ErrInvalid
	}
	// reject non-canonical encodings of the same number
	if c.Encode(nums[0]) != s {
		return 0, ErrInvalid
	}
	return nums[0], nil
}
