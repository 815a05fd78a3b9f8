package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainStore hides SetMany so SetAll takes the per-key path.
type plainStore struct {
	Store
	sets int
}

func (p *plainStore) Set(ctx context.Context, key, value string) error {
	p.sets++
	return p.Store.Set(ctx, key, value)
}

func TestMemoryStore_GetSetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	v, err := s.Get(ctx, KeyAPIToken)
	require.NoError(t, err)
	assert.Empty(t, v, "absent key must read as empty")

	require.NoError(t, s.Set(ctx, KeyAPIToken, "t1"))
	require.NoError(t, s.Set(ctx, KeyAPIToken, "t2"))

	v, err = s.Get(ctx, KeyAPIToken)
	require.NoError(t, err)
	assert.Equal(t, "t2", v)

	require.NoError(t, s.Delete(ctx, KeyAPIToken))
	require.NoError(t, s.Delete(ctx, KeyAPIToken))

	v, err = s.Get(ctx, KeyAPIToken)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetMany(ctx, map[string]string{KeyToken: "q", KeyAPIToken: "q"}))
	require.NoError(t, s.Clear(ctx))

	v, _ := s.Get(ctx, KeyToken)
	assert.Empty(t, v)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, KeyAPIToken, "t")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Get(ctx, KeyAPIToken)
		}()
	}
	wg.Wait()

	v, err := s.Get(ctx, KeyAPIToken)
	require.NoError(t, err)
	assert.Equal(t, "t", v)
}

func TestSetAll_UsesBatchWhenAvailable(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, SetAll(ctx, s, map[string]string{KeyToken: "q1", KeyAPIToken: "q1"}))

	v, _ := s.Get(ctx, KeyToken)
	assert.Equal(t, "q1", v)
	v, _ = s.Get(ctx, KeyAPIToken)
	assert.Equal(t, "q1", v)
}

func TestSetAll_FallsBackToSet(t *testing.T) {
	p := &plainStore{Store: NewMemoryStore()}
	ctx := context.Background()

	require.NoError(t, SetAll(ctx, p, map[string]string{KeyToken: "q1", KeyAPIToken: "q1"}))
	assert.Equal(t, 2, p.sets)

	v, _ := p.Get(ctx, KeyAPIToken)
	assert.Equal(t, "q1", v)
}
