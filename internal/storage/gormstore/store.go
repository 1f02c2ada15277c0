// Package gormstore implements the relational stores (stories, events,
// resources, tags) on Postgres through GORM.
package gormstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/harborlight/backend/internal/storage"
)

func mapErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrDuplicate
	default:
		return err
	}
}
