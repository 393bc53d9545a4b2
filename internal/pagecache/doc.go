// Package pagecache keeps recently fetched pages in memory with TTL expiration.
//
// Interactive tables refetch whenever the user returns to a page they have
// already seen. Wrapping a data source in a Fetcher serves those repeats from
// memory until the entry expires or the table asks for a fresh load:
//   - Entries are keyed by the full query (search, sort, page and page size)
//   - Concurrent fetches of the same query share one call to the source
//   - Failed fetches are never cached
package pagecache
