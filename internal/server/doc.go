// Package server exposes the dashboard panels as a JSON HTTP API.
//
// Live panels report "source": "live" or "fallback"; a fallback response also
// carries a "warning" for the page to display.
package server
