package postgres

import (
	"schoolapp/internal/domain/entity"
	"schoolapp/internal/infra/persistence/model"
)

func toUserDomain(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	user := &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.Password,
		Firstname:    m.Firstname,
		Lastname:     m.Lastname,
		Role:         entity.Role(m.UserRole),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Teacher != nil {
		user.Teacher = toTeacherDomain(m.Teacher)
	}

	return user
}

func fromUserDomain(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		UserRole:  user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toTeacherDomain(m *model.TeacherModel) *entity.TeacherProfile {
	return &entity.TeacherProfile{
		ID:          m.ID,
		UserID:      m.UserID,
		PhoneNumber: m.PhoneNumber,
		Institution: m.Institution,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromTeacherDomain(p *entity.TeacherProfile) *model.TeacherModel {
	return &model.TeacherModel{
		ID:          p.ID,
		UserID:      p.UserID,
		PhoneNumber: p.PhoneNumber,
		Institution: p.Institution,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toUserDomainList(models []*model.UserModel) []*entity.User {
	users := make([]*entity.User, 0, len(models))
	for _, m := range models {
		users = append(users, toUserDomain(m))
	}

	return users
}
