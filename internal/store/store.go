// Package store is the data access layer. Every function takes the database
// handle explicitly; rows scoped to a store are always filtered by store_id.
package store

// now matches the column default so updated_at keeps millisecond precision.
const now = `strftime('%Y-%m-%d %H:%M:%f', 'now')`
