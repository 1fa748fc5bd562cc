/*
Package sqlite provides a pure-Go SQLite implementation of the StateStore interface.

Each registry cell lives in its own table with JSON payloads:

	meta(key TEXT PRIMARY KEY, value INTEGER)          -- next_id
	entities(id INTEGER PRIMARY KEY, payload BLOB)     -- EntityById
	owner_buckets(owner TEXT PRIMARY KEY, payload BLOB) -- EntitiesByOwner

Commit runs in a single SQL transaction and compares NextId before writing it.
*/
package sqlite
