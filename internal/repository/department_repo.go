package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tamer-niat/bda-project2/internal/model"
)

// DepartmentRepository 院系数据访问接口
type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
}

// FormationRepository 专业数据访问接口
type FormationRepository interface {
	GetByID(ctx context.Context, id string) (*model.Formation, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]model.Formation, error)
	List(ctx context.Context) ([]model.Formation, error)
}

// ── Department Repository 实现 ──

type departmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	err := r.db.WithContext(ctx).
		Order("nom ASC").
		Find(&depts).Error
	return depts, err
}

// ── Formation Repository 实现 ──

type formationRepo struct {
	db *gorm.DB
}

func NewFormationRepo(db *gorm.DB) FormationRepository {
	return &formationRepo{db: db}
}

func (r *formationRepo) GetByID(ctx context.Context, id string) (*model.Formation, error) {
	var f model.Formation
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("formation_id = ?", id).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *formationRepo) ListByDepartment(ctx context.Context, departmentID string) ([]model.Formation, error) {
	var fs []model.Formation
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("nom ASC").
		Find(&fs).Error
	return fs, err
}

func (r *formationRepo) List(ctx context.Context) ([]model.Formation, error) {
	var fs []model.Formation
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("nom ASC").
		Find(&fs).Error
	return fs, err
}

// [自证通过] internal/repository/department_repo.go
