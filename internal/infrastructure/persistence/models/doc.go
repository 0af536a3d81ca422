// Package models contains the GORM database models of the gateway tables.
// They are kept apart from the domain entities; every model converts to and
// from its entity with ToDomain and FromDomain.
package models
