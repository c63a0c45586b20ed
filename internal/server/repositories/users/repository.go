package users

import (
	"context"

	"github.com/dmitrijs2005/opmlogin/internal/server/models"
)

// Repository stores users keyed by email. Lookups of unknown emails return
// common.ErrorNotFound; duplicate emails on Create return
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
