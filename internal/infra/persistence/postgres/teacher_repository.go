package postgres

import (
	"context"

	"gorm.io/gorm"

	"schoolapp/internal/domain/entity"
	domainerrors "schoolapp/internal/domain/errors"
	"schoolapp/internal/domain/repository"
	"schoolapp/internal/errors"
)

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository is the constructor for teacherRepository.
func NewTeacherRepository(db *gorm.DB) repository.TeacherRepository {
	return &teacherRepository{db: db}
}

// Create persists a teacher profile. A second profile for the same user is a uniqueness violation.
func (repo *teacherRepository) Create(ctx context.Context, profile *entity.TeacherProfile) error {
	profileM := fromTeacherDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, err.Error())
		case isForeignKeyConstraintViolation(err):
			return errors.Wrap(repository.ErrUserNotFound, err.Error())
		default:
			return errors.Wrap(err, "failed to create teacher profile")
		}
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}
