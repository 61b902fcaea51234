// Package cache provides the process-local TTL cache used for live API
// responses.
//
// Policy:
//   - An entry is served only while now - FetchedAt < ttl
//   - A miss or an expired entry triggers exactly one fetch
//   - A successful fetch overwrites the entry; a failed fetch leaves it alone
//     and is returned to the caller (an expired entry is never served)
//
// Fetches for the same key are serialized; different keys fetch
// independently.
package cache
