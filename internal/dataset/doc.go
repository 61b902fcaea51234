// Package dataset loads the static CSV resources bundled with the dashboard.
//
// Resources live in a single directory (see the data/ folder of the
// repository). They are read on every call; callers that want caching keep
// the returned table themselves. A resource that is missing or is not valid
// CSV fails with ErrDataUnavailable; nothing falls back beneath this layer.
package dataset
