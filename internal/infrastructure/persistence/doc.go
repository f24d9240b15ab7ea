// Package persistence stores key metadata with GORM on SQLite or PostgreSQL.
package persistence
