// Package postgres provides PostgreSQL-specific implementations of the deck,
// card and study log stores defined in the internal/store package.
// It handles the details of database connections, schema migrations, query
// execution, and data mapping between domain entities and database records.
package postgres
