package cache

import (
	"context"
	stderrors "errors"
	"time"
)

// Tiered layers a fast cache over a slower, usually persistent one.
// Reads try Front first and promote hits from Back; writes go to both.
type Tiered struct {
	Front Cache
	Back  Cache
}

// NewTiered creates a two-level cache.
func NewTiered(front, back Cache) *Tiered {
	return &Tiered{Front: front, Back: back}
}

// Get retrieves a value, promoting back-tier hits into the front tier.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := t.Front.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, ok, err := t.Back.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.Front.Set(ctx, key, data, 0)
	return data, true, nil
}

// Set stores a value in both tiers.
func (t *Tiered) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return stderrors.Join(
		t.Front.Set(ctx, key, data, ttl),
		t.Back.Set(ctx, key, data, ttl),
	)
}

// Delete removes a value from both tiers.
func (t *Tiered) Delete(ctx context.Context, key string) error {
	return stderrors.Join(t.Front.Delete(ctx, key), t.Back.Delete(ctx, key))
}

// Close closes both tiers.
func (t *Tiered) Close() error {
	return stderrors.Join(t.Front.Close(), t.Back.Close())
}

var _ Cache = (*Tiered)(nil)
