package server

import (
	"log"
	"os"
	"path/filepath"

	"goredis/internal/rdb"
	"goredis/internal/storage"
)

// loadRDB restores the keyspace from cfg.Dir/cfg.DBFilename at boot. A
// missing file is a normal first-run state, not an error; a corrupt file is
// logged and the server starts empty rather than failing to boot.
func loadRDB(cfg *Config, store *storage.Store) {
	path := filepath.Join(cfg.Dir, cfg.DBFilename)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("server: no RDB file at %s, starting with an empty database", path)
			return
		}
		log.Printf("server: could not open RDB file %s: %v, starting with an empty database", path, err)
		return
	}
	defer f.Close()

	parsed, err := rdb.Parse(f)
	if err != nil {
		log.Printf("server: RDB file %s is corrupt: %v, starting with an empty database", path, err)
		return
	}

	if err := parsed.Restore(store); err != nil {
		log.Printf("server: failed to restore keyspace from %s: %v, starting with an empty database", path, err)
		return
	}

	log.Printf("server: loaded %d keys from %s", store.Len(), path)
}
