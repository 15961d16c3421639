package tokenstore

import "errors"

var (
	// ErrStoreUnavailable is returned when the backing key-value store cannot
	// answer a lookup. The underlying store error is joined to it.
	ErrStoreUnavailable = errors.New("tokenstore.store_unavailable")

	// ErrNilGetter is the panic value used when a gateway is built without a store.
	ErrNilGetter = errors.New("tokenstore.nil_getter")
)
