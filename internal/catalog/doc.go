// Package catalog holds a user's songs in memory and implements search over them.
//
// A search is two steps. [Filter] keeps the songs matching a [Criteria], then a [Sampler]
// shuffles the matches and keeps the first few for display. Every search reshuffles, so two
// searches with the same criteria may show different songs.
package catalog
