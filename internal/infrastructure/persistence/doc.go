// Package persistence provides the GORM repositories of the gateway.
// Repositories validate domain entities before writing, convert between
// entities and the models package, and translate gorm.ErrRecordNotFound
// into the sentinel error of the owning domain package.
package persistence
