// Package redis provides a Redis-backed implementation of store.Store.
//
// Every key is stored as a Redis string under a configurable prefix
// (default "clickflow:"), which lets several workflows share one Redis
// database. An optional TTL expires values that are not rewritten.
//
// # Basic Usage
//
//	kv := redis.NewRedisStore(redis.RedisOptions{
//		Addr:   "localhost:6379",
//		Prefix: "clickflow:demo:",
//	})
//	defer kv.Close()
package redis
