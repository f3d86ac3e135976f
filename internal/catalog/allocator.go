package catalog

import "context"

// nextID returns the next free product identifier: MAX(id_product)+1, or 1
// on an empty catalog. Gap-tolerant but not collision-free under concurrent
// writers; correct only because batches are single-writer and strictly
// sequential. Concurrent batches would need store-assigned identifiers
// instead of this read-then-use scheme.
func nextID(ctx context.Context, s Store) (int64, error) {
	max, err := s.MaxProductID(ctx)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
