package news

import (
	badgerdb "github.com/dgraph-io/badger/v4"
)

// pathCache memoizes resolved bundle/category path segments so repeated
// listing requests against the same path don't re-walk the hierarchy
// through the relational store. It holds no data the store doesn't also
// hold, so a cold cache or a lost entry is never an error, only a slower
// lookup; it is never invalidated explicitly, only bounded by process
// lifetime.
type pathCache struct {
	db *badgerdb.DB
}

// newPathCache opens an in-memory badger instance scoped to one process.
func newPathCache() (*pathCache, error) {
	db, err := badgerdb.Open(badgerdb.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &pathCache{db: db}, nil
}

func (c *pathCache) close() error {
	return c.db.Close()
}

func (c *pathCache) get(key string) (uint32, bool) {
	var id uint32
	found := false
	_ = c.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 4 {
				return nil
			}
			id = uint32(val[0])<<24 | uint32(val[1])<<16 | uint32(val[2])<<8 | uint32(val[3])
			found = true
			return nil
		})
	})
	return id, found
}

func (c *pathCache) set(key string, id uint32) {
	val := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	_ = c.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), val)
	})
}

const (
	bundleCacheKeyPrefix   = "b:"
	categoryCacheKeyPrefix = "c:"
)
