// Package dashboard assembles the data behind each dashboard panel.
//
// Live panels try the Fetcher first and fall back to the bundled snapshot
// through OrElse. The Result records which path produced the value, so the
// substitution stays visible to the page (and to the logs).
package dashboard
