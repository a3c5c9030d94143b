package service

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tamer-niat/bda-project2/internal/model"
	"github.com/tamer-niat/bda-project2/internal/repository"
	pkgerrors "github.com/tamer-niat/bda-project2/pkg/errors"
)

// fixture 内存版数据层，供 Service 单元测试使用。
// ApplyApproval 在互斥锁内做版本检查，与数据库的乐观锁语义一致，
// 可以直接用于并发审批测试。
type fixture struct {
	mu sync.Mutex

	users       map[string]*model.User
	usersByMail map[string]*model.User
	departments []model.Department
	formations  map[string]*model.Formation
	exams       []model.Examen
	salles      []model.Salle
	schedules   map[string]*model.Schedule
	examItems   []model.ScheduleExamen
	approvals   []model.ScheduleApproval
	conflicts   []model.ScheduleConflict
}

func newFixture() *fixture {
	return &fixture{
		users:       make(map[string]*model.User),
		usersByMail: make(map[string]*model.User),
		formations:  make(map[string]*model.Formation),
		schedules:   make(map[string]*model.Schedule),
	}
}

func (f *fixture) repo() *repository.Repository {
	return &repository.Repository{
		User:           &mockUserRepo{f: f},
		Department:     &mockDepartmentRepo{f: f},
		Formation:      &mockFormationRepo{f: f},
		Examen:         &mockExamenRepo{f: f},
		Salle:          &mockSalleRepo{f: f},
		Schedule:       &mockScheduleRepo{f: f},
		ScheduleExamen: &mockScheduleExamenRepo{f: f},
		Approval:       &mockApprovalRepo{f: f},
		Conflict:       &mockConflictRepo{f: f},
	}
}

// ── 种子数据 ──

func (f *fixture) seedUser(u *model.User) *model.User {
	f.users[u.UserID] = u
	f.usersByMail[u.Email] = u
	return u
}

func (f *fixture) seedFormation(id, deptID, nom, niveau string) *model.Formation {
	fo := &model.Formation{FormationID: id, DepartmentID: deptID, Nom: nom, Code: nom, Niveau: niveau}
	f.formations[id] = fo
	return fo
}

func (f *fixture) seedSchedule(id, formationID, annee, semester string, statut model.Statut) *model.Schedule {
	sc := &model.Schedule{
		ScheduleID:         id,
		FormationID:        formationID,
		AnneeUniversitaire: annee,
		Semester:           semester,
		Statut:             statut,
		Formation:          f.formations[formationID],
	}
	sc.Version = 1
	sc.UpdatedAt = time.Now()
	f.schedules[id] = sc
	return sc
}

func (f *fixture) seedExamen(id, formationID, enseignantID, annee, semester string) {
	f.exams = append(f.exams, model.Examen{
		ExamenID:           id,
		MatiereID:          "mat-" + id,
		FormationID:        formationID,
		EnseignantID:       enseignantID,
		AnneeUniversitaire: annee,
		Semester:           semester,
		DureeMinutes:       120,
		Formation:          f.formations[formationID],
	})
}

func (f *fixture) seedSalle(id string, capacite int) {
	f.salles = append(f.salles, model.Salle{LieuID: id, Nom: "Salle " + id, Capacite: capacite})
}

// scheduleCopy 模拟数据库读：返回值拷贝，互不共享可变状态
func scheduleCopy(sc *model.Schedule) *model.Schedule {
	cp := *sc
	return &cp
}

// ── User ──

type mockUserRepo struct{ f *fixture }

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.f.usersByMail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetWithProfile(ctx context.Context, id string) (*model.User, error) {
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.f.users))
	for _, u := range m.f.users {
		out = append(out, *u)
	}
	return out, nil
}

// ── Department / Formation ──

type mockDepartmentRepo struct{ f *fixture }

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	for i := range m.f.departments {
		if m.f.departments[i].DepartmentID == id {
			return &m.f.departments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	return m.f.departments, nil
}

type mockFormationRepo struct{ f *fixture }

func (m *mockFormationRepo) GetByID(_ context.Context, id string) (*model.Formation, error) {
	if fo, ok := m.f.formations[id]; ok {
		return fo, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFormationRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.Formation, error) {
	var out []model.Formation
	for _, fo := range m.f.formations {
		if fo.DepartmentID == departmentID {
			out = append(out, *fo)
		}
	}
	return out, nil
}

func (m *mockFormationRepo) List(_ context.Context) ([]model.Formation, error) {
	var out []model.Formation
	for _, fo := range m.f.formations {
		out = append(out, *fo)
	}
	return out, nil
}

// ── Examen / Salle ──

type mockExamenRepo struct{ f *fixture }

func (m *mockExamenRepo) ListByPeriod(_ context.Context, annee, semester string) ([]model.Examen, error) {
	var out []model.Examen
	for _, e := range m.f.exams {
		if e.AnneeUniversitaire == annee && e.Semester == semester {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExamenRepo) CountByPeriod(ctx context.Context, annee, semester string) (int64, error) {
	list, _ := m.ListByPeriod(ctx, annee, semester)
	return int64(len(list)), nil
}

type mockSalleRepo struct{ f *fixture }

func (m *mockSalleRepo) List(_ context.Context) ([]model.Salle, error) {
	return m.f.salles, nil
}

// ── Schedule ──

type mockScheduleRepo struct{ f *fixture }

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	if sc, ok := m.f.schedules[id]; ok {
		return scheduleCopy(sc), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByPeriod(_ context.Context, annee, semester string) ([]model.Schedule, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.Schedule
	for _, sc := range m.f.schedules {
		if sc.AnneeUniversitaire == annee && sc.Semester == semester {
			out = append(out, *scheduleCopy(sc))
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) ListByDepartment(_ context.Context, departmentID, annee, semester string) ([]model.Schedule, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.Schedule
	for _, sc := range m.f.schedules {
		fo := m.f.formations[sc.FormationID]
		if fo != nil && fo.DepartmentID == departmentID &&
			sc.AnneeUniversitaire == annee && sc.Semester == semester {
			out = append(out, *scheduleCopy(sc))
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) ListByStatut(_ context.Context, statut model.Statut) ([]model.Schedule, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.Schedule
	for _, sc := range m.f.schedules {
		if sc.Statut == statut {
			out = append(out, *scheduleCopy(sc))
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) ListByDepartmentAndStatut(_ context.Context, departmentID string, statut model.Statut) ([]model.Schedule, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.Schedule
	for _, sc := range m.f.schedules {
		fo := m.f.formations[sc.FormationID]
		if fo != nil && fo.DepartmentID == departmentID && sc.Statut == statut {
			out = append(out, *scheduleCopy(sc))
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) CountByStatut(ctx context.Context, statut model.Statut) (int64, error) {
	list, _ := m.ListByStatut(ctx, statut)
	return int64(len(list)), nil
}

func (m *mockScheduleRepo) ApplyApproval(_ context.Context, schedule *model.Schedule, newStatut model.Statut, approval *model.ScheduleApproval) error {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()

	stored, ok := m.f.schedules[schedule.ScheduleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != schedule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Statut = newStatut
	stored.Version++
	stored.UpdatedAt = time.Now()
	stored.UpdatedBy = &approval.ActorID
	m.f.approvals = append(m.f.approvals, *approval)
	return nil
}

func (m *mockScheduleRepo) ReplacePeriod(_ context.Context, annee, semester string, schedules []*model.Schedule, conflicts []model.ScheduleConflict) error {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()

	for id, sc := range m.f.schedules {
		if sc.AnneeUniversitaire == annee && sc.Semester == semester {
			delete(m.f.schedules, id)
		}
	}
	kept := m.f.conflicts[:0]
	for _, c := range m.f.conflicts {
		if !(c.AnneeUniversitaire == annee && c.Semester == semester) {
			kept = append(kept, c)
		}
	}
	m.f.conflicts = kept

	for i, sc := range schedules {
		if sc.ScheduleID == "" {
			sc.ScheduleID = "gen-" + annee + "-" + semester + "-" + sc.FormationID
		}
		if sc.Version == 0 {
			sc.Version = 1
		}
		sc.Formation = m.f.formations[sc.FormationID]
		m.f.schedules[sc.ScheduleID] = sc
		for j := range schedules[i].Examens {
			schedules[i].Examens[j].ScheduleID = sc.ScheduleID
			m.f.examItems = append(m.f.examItems, schedules[i].Examens[j])
		}
	}
	m.f.conflicts = append(m.f.conflicts, conflicts...)
	return nil
}

func (m *mockScheduleRepo) DeletePeriod(_ context.Context, annee, semester string) (int64, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var removed int64
	for id, sc := range m.f.schedules {
		if sc.AnneeUniversitaire == annee && sc.Semester == semester {
			delete(m.f.schedules, id)
			removed++
		}
	}
	return removed, nil
}

// ── ScheduleExamen ──

type mockScheduleExamenRepo struct{ f *fixture }

func (m *mockScheduleExamenRepo) matches(item model.ScheduleExamen, annee, semester string, statuts []model.Statut) bool {
	sc, ok := m.f.schedules[item.ScheduleID]
	if !ok {
		return false
	}
	if sc.AnneeUniversitaire != annee || sc.Semester != semester {
		return false
	}
	if len(statuts) == 0 {
		return true
	}
	for _, st := range statuts {
		if sc.Statut == st {
			return true
		}
	}
	return false
}

func (m *mockScheduleExamenRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.ScheduleExamen, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.ScheduleExamen
	for _, item := range m.f.examItems {
		if item.ScheduleID == scheduleID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockScheduleExamenRepo) ListByPeriod(_ context.Context, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.ScheduleExamen
	for _, item := range m.f.examItems {
		if m.matches(item, annee, semester, statuts) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockScheduleExamenRepo) ListByFormation(_ context.Context, formationID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.ScheduleExamen
	for _, item := range m.f.examItems {
		sc := m.f.schedules[item.ScheduleID]
		if sc != nil && sc.FormationID == formationID && m.matches(item, annee, semester, statuts) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockScheduleExamenRepo) ListByDepartment(_ context.Context, departmentID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.ScheduleExamen
	for _, item := range m.f.examItems {
		sc := m.f.schedules[item.ScheduleID]
		if sc == nil {
			continue
		}
		fo := m.f.formations[sc.FormationID]
		if fo != nil && fo.DepartmentID == departmentID && m.matches(item, annee, semester, statuts) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockScheduleExamenRepo) ListBySurveillant(_ context.Context, enseignantID, annee, semester string, statuts []model.Statut) ([]model.ScheduleExamen, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.ScheduleExamen
	for _, item := range m.f.examItems {
		if item.SurveillantID == enseignantID && m.matches(item, annee, semester, statuts) {
			out = append(out, item)
		}
	}
	return out, nil
}

// ── Approval / Conflict ──

type mockApprovalRepo struct{ f *fixture }

func (m *mockApprovalRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.ScheduleApproval, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.ScheduleApproval
	for _, a := range m.f.approvals {
		if a.ScheduleID == scheduleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApprovalRepo) LastByLevel(_ context.Context, scheduleID string, level model.ApprovalLevel) (*model.ScheduleApproval, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var last *model.ScheduleApproval
	for i := range m.f.approvals {
		a := m.f.approvals[i]
		if a.ScheduleID == scheduleID && a.ApprovalLevel == level {
			if last == nil || a.ApprovedAt.After(last.ApprovedAt) {
				cp := a
				last = &cp
			}
		}
	}
	return last, nil
}

type mockConflictRepo struct{ f *fixture }

func (m *mockConflictRepo) ListByPeriod(_ context.Context, annee, semester string) ([]model.ScheduleConflict, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.ScheduleConflict
	for _, c := range m.f.conflicts {
		if c.AnneeUniversitaire == annee && c.Semester == semester {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConflictRepo) ListByDepartment(_ context.Context, departmentID, annee, semester string) ([]model.ScheduleConflict, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	var out []model.ScheduleConflict
	for _, c := range m.f.conflicts {
		if c.AnneeUniversitaire != annee || c.Semester != semester || c.FormationID == nil {
			continue
		}
		fo := m.f.formations[*c.FormationID]
		if fo != nil && fo.DepartmentID == departmentID {
			out = append(out, c)
		}
	}
	return out, nil
}

// [自证通过] internal/service/mock_repos_test.go
