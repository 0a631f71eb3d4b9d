// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"schoolapp/internal/domain/entity"
	domainerrors "schoolapp/internal/domain/errors"
	"schoolapp/internal/domain/query"
	"schoolapp/internal/domain/repository"
	"schoolapp/internal/errors"
	"schoolapp/internal/infra/persistence/model"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by primary key.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return repo.first(ctx, "find user by id", func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	})
}

// FindByUsername retrieves a single user by exact username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.first(ctx, "find user by username", func(db *gorm.DB) *gorm.DB {
		return db.Where("username = ?", username)
	})
}

// FindByIdentifier matches either the username or the email column.
func (repo *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	return repo.first(ctx, "find user by identifier", func(db *gorm.DB) *gorm.DB {
		return db.Where("username = ? OR email = ?", identifier, identifier)
	})
}

// FindTeacherByUsername loads the user joined with its teacher profile.
// The inner join drops users without a profile, which surface as not found.
func (repo *userRepository) FindTeacherByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.first(ctx, "find teacher by username", func(db *gorm.DB) *gorm.DB {
		return db.InnerJoins("Teacher").Where("users.username = ?", username)
	})
}

func (repo *userRepository) first(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Scopes(scope).
		Order("users.id").
		Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to "+op)
	}

	return toUserDomain(&userM), nil
}

// List counts the matching users and then fetches the requested page in ascending ID order.
// Each statement gets a fresh chain since a gorm chain is not reusable after execution.
func (repo *userRepository) List(ctx context.Context, filter query.FilterSpec, page query.PageRequest) ([]*entity.User, int64, error) {
	base := func() *gorm.DB {
		return repo.db.WithContext(ctx).
			Clauses(dbresolver.Read).
			Model(&model.UserModel{}).
			Scopes(applyUserFilter(filter))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	var models []*model.UserModel
	if total > int64(page.Offset()) {
		if err := base().
			Order("id ASC").
			Offset(page.Offset()).
			Limit(page.Limit()).
			Find(&models).Error; err != nil {
			return nil, 0, errors.Wrap(err, "failed to list users")
		}
	}

	return toUserDomainList(models), total, nil
}

// Create persists a new user and copies the generated ID and timestamps back onto it.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit("Teacher").Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, err.Error())
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}
