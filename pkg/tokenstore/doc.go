// Package tokenstore resolves opaque session tokens against a shared
// key-value store.
//
// The Gateway performs a single point read per call and normalizes the
// "not found" case into an explicit absence:
//
//	value, found, err := gw.FindToken(ctx, token)
//	switch {
//	case errors.Is(err, tokenstore.ErrStoreUnavailable):
//	    // store is down, the original error is still in the chain
//	case !found:
//	    // unknown token
//	default:
//	    // use value
//	}
//
// The gateway is polymorphic over the Getter interface. RedisGetter adapts a
// go-redis client, MemoryStore serves tests and local development, and
// GetterFunc turns any function into a store.
//
// Nothing in this package writes, caches or expires records. Expiration is
// delegated to the store, and connection setup belongs to the caller (see
// package redis).
package tokenstore
