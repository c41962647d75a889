package rdb

import (
	"time"

	"goredis/internal/storage"
)

// Restore installs the parsed key-value table into store, replacing its
// entire prior contents. Expiry timestamps are converted from the absolute
// unix-ms values recorded in the file to the store's time.Time form.
func (pr *ParsedRDB) Restore(store *storage.Store) error {
	values := make(map[string]*storage.Value, len(pr.DB))
	for key, entry := range pr.DB {
		var expiresAt *time.Time
		if entry.ExpiryMs != nil {
			t := time.UnixMilli(*entry.ExpiryMs)
			expiresAt = &t
		}
		values[key] = &storage.Value{
			Raw:       entry.Raw,
			ExpiresAt: expiresAt,
			Encoding:  storage.Encoding(entry.Encoding),
		}
	}
	return store.Restore(values)
}
