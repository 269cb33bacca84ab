package dataset

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/cmarsiglia/habitai/internal/db"
	"github.com/cmarsiglia/habitai/internal/domain"
	"github.com/cmarsiglia/habitai/internal/domain/neighborhood"
)

// store is the consumer interface for the Redis dataset (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// RedisSource keeps every neighborhood in a hash named
// <prefix>barrio:<city>:<name> whose fields are the dataset columns.
type RedisSource struct {
	store  store
	prefix string
}

// NewRedis creates a Redis dataset source.
func NewRedis(s store, prefix string) *RedisSource {
	return &RedisSource{store: s, prefix: prefix}
}

// Key returns the hash key of a neighborhood.
func (s *RedisSource) Key(city, name string) string {
	return s.prefix + "barrio:" + strings.ToLower(city) + ":" + name
}

func (s *RedisSource) pattern() string {
	return s.prefix + "barrio:*"
}

// Load scans every neighborhood hash and fetches them in one round trip.
// Rows come back in import order. SCAN may repeat keys, so they are deduplicated.
func (s *RedisSource) Load(ctx context.Context) ([]neighborhood.Neighborhood, error) {
	keys, err := s.store.Scan(ctx, s.pattern())
	if err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)
	keys = slices.Compact(keys)

	hashes, err := s.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}

	type ordered struct {
		row int
		n   neighborhood.Neighborhood
	}
	rows := make([]ordered, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		source := "redis:" + keys[i]
		n, err := parseRow(source, 0, func(col string) (string, bool) {
			v, ok := m[col]
			return v, ok
		})
		if err != nil {
			return nil, err
		}
		row, err := strconv.Atoi(m[colRow])
		if err != nil {
			row = len(keys) + i
		}
		rows = append(rows, ordered{row: row, n: n})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].row < rows[j].row })
	out := make([]neighborhood.Neighborhood, len(rows))
	for i, r := range rows {
		out[i] = r.n
	}
	return out, nil
}

// Save writes rows as hashes in one pipelined round trip. With replace set,
// existing neighborhood hashes under the prefix are deleted first. Two rows
// sharing a key are a *domain.DataIntegrityError and nothing is written.
func (s *RedisSource) Save(ctx context.Context, rows []neighborhood.Neighborhood, replace bool) error {
	items := make([]db.HashSetItem, len(rows))
	seen := make(map[string]int, len(rows))
	for i, n := range rows {
		key := s.Key(n.City(), n.Name())
		if first, dup := seen[key]; dup {
			// rows are numbered as in the CSV file, header first
			return domain.NewDataIntegrity("redis:"+key, i+2, ColName,
				fmt.Sprintf("duplicate barrio %q in %s (first at row %d)", n.Name(), n.City(), first+2))
		}
		seen[key] = i
		fields := toFields(n)
		fields[colRow] = strconv.Itoa(i)
		items[i] = db.HashSetItem{Key: key, Fields: fields}
	}

	if replace {
		keys, err := s.store.Scan(ctx, s.pattern())
		if err != nil {
			return fmt.Errorf("scan dataset: %w", err)
		}
		if err := s.store.Del(ctx, keys...); err != nil {
			return fmt.Errorf("purge dataset: %w", err)
		}
	}

	if err := s.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("store dataset: %w", err)
	}
	return nil
}
