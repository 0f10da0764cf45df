// Package types defines the entity types, transfer records, Config, the
// Repository interface, and standard errors for the bookshelf record manager.
package types
