package model

import "testing"

// 验证合法转移表：四条边，且 REJECT 每次只回退一级
func TestNextStatut_AllowedEdges(t *testing.T) {
	cases := []struct {
		from   Statut
		level  ApprovalLevel
		action ApprovalAction
		want   Statut
	}{
		{StatutGenere, LevelChefDepartement, ActionApprove, StatutValideDept},
		{StatutGenere, LevelChefDepartement, ActionReject, StatutBrouillon},
		{StatutValideDept, LevelDoyen, ActionApprove, StatutPublie},
		{StatutValideDept, LevelDoyen, ActionReject, StatutGenere}, // 回到 GENERE 而非 BROUILLON
	}

	for _, c := range cases {
		got, ok := NextStatut(c.from, c.level, c.action)
		if !ok {
			t.Errorf("NextStatut(%s, %s, %s) 应当合法", c.from, c.level, c.action)
			continue
		}
		if got != c.want {
			t.Errorf("NextStatut(%s, %s, %s) = %s, 期望 %s", c.from, c.level, c.action, got, c.want)
		}
	}
}

// 院长在非 VALIDE_DEPARTEMENT 状态下的任何动作都必须被拒绝
func TestNextStatut_DoyenRequiresValideDept(t *testing.T) {
	for _, from := range []Statut{StatutBrouillon, StatutGenere, StatutPublie} {
		for _, action := range []ApprovalAction{ActionApprove, ActionReject} {
			if _, ok := NextStatut(from, LevelDoyen, action); ok {
				t.Errorf("院长不应能在 %s 状态下执行 %s", from, action)
			}
		}
	}
}

// 系主任在非 GENERE 状态下的任何动作都必须被拒绝
func TestNextStatut_ChefRequiresGenere(t *testing.T) {
	for _, from := range []Statut{StatutBrouillon, StatutValideDept, StatutPublie} {
		for _, action := range []ApprovalAction{ActionApprove, ActionReject} {
			if _, ok := NextStatut(from, LevelChefDepartement, action); ok {
				t.Errorf("系主任不应能在 %s 状态下执行 %s", from, action)
			}
		}
	}
}

func TestStatutValid(t *testing.T) {
	for _, s := range []Statut{StatutBrouillon, StatutGenere, StatutValideDept, StatutPublie} {
		if !s.Valid() {
			t.Errorf("%s 应为合法状态", s)
		}
	}
	if Statut("EN_ATTENTE").Valid() {
		t.Error("未知状态值不应通过校验")
	}
}

func TestRoleCanActAtLevel(t *testing.T) {
	if !RoleDoyen.CanActAtLevel(LevelDoyen) || !RoleViceDoyen.CanActAtLevel(LevelDoyen) {
		t.Error("院长/副院长应具备 DOYEN 级审批资格")
	}
	if RoleChefDept.CanActAtLevel(LevelDoyen) {
		t.Error("系主任不应具备 DOYEN 级审批资格")
	}
	if !RoleChefDept.CanActAtLevel(LevelChefDepartement) {
		t.Error("系主任应具备 CHEF_DEPARTEMENT 级审批资格")
	}
	if RoleEtudiant.CanActAtLevel(LevelChefDepartement) || RoleEnseignant.CanActAtLevel(LevelDoyen) {
		t.Error("学生/教师不应具备任何审批资格")
	}
}

// [自证通过] internal/model/statut_test.go
