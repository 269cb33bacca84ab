package dataset

import (
	"context"

	"github.com/cmarsiglia/habitai/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn    func(ctx context.Context, items []db.HashSetItem) error
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn          func(ctx context.Context, keys ...string) error
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

// memoryStore is a mockStore backed by a map, for save/load round trips.
func memoryStore() (*mockStore, map[string]map[string]string) {
	data := map[string]map[string]string{}
	ms := &mockStore{
		hsetMultiFn: func(_ context.Context, items []db.HashSetItem) error {
			for _, it := range items {
				data[it.Key] = it.Fields
			}
			return nil
		},
		hgetAllMultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			out := make([]map[string]string, len(keys))
			for i, k := range keys {
				out[i] = data[k]
			}
			return out, nil
		},
		delFn: func(_ context.Context, keys ...string) error {
			for _, k := range keys {
				delete(data, k)
			}
			return nil
		},
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			keys := make([]string, 0, len(data))
			for k := range data {
				keys = append(keys, k)
			}
			return keys, nil
		},
	}
	return ms, data
}
