package repository

import (
	"errors"
	"fmt"

	"go-inventory-reorder/internal/model"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the domain error kinds.
func translate(err error, entity string, id fmt.Stringer) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if id == nil {
			return &model.NotFoundError{Entity: entity}
		}
		return model.NewNotFound(entity, id)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &model.NotFoundError{Entity: entity + " reference"}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &model.ConflictError{Message: entity + " violates a uniqueness rule"}
	}
	return err
}
