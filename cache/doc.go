// Package cache provides bounded, generic LRU caches.
//
// # Cache[K, V]
//
// A thread-safe LRU cache with a hard capacity. Used for the measurement
// worker's tokenization cache, where one goroutine dominates access.
//
//	tokens := cache.New[string, []pathgeom.Token](5000)
//	tokens.Set(d, toks)
//	toks, ok := tokens.Get(d)
//
// # ShardedCache[K, V]
//
// A sharded LRU cache for keys hit from many goroutines at once (the
// sample-table cache is read by playback and export concurrently). Uses
// 16 shards to reduce lock contention, with LRU eviction per shard.
//
//	samples := cache.NewSharded[Key, []Sample](64, hashKey)
//
// # Thread Safety
//
// Both Cache and ShardedCache are safe for concurrent use.
// Neither should be copied after creation (they contain mutexes).
// Cached values are shared, not copied: callers must treat them as
// immutable.
package cache
