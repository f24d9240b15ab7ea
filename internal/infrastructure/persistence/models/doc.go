// Package models contains GORM database models for the infrastructure layer.
// They are kept apart from the domain entities in internal/domain/keys.
package models
