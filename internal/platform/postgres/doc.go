// Package postgres provides PostgreSQL implementations of the store
// interfaces: a key-value store on kv_entries and a workout set store on
// workout_sets. It handles the details of query execution, error mapping
// and schema migrations (embedded goose SQL files).
package postgres
