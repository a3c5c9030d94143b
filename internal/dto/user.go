package dto

// UserProfileResponse 用户详情（含角色档案）
type UserProfileResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Nom    string `json:"nom,omitempty"`
	Prenom string `json:"prenom,omitempty"`

	// 按角色填充的档案字段
	DepartmentID  string `json:"department_id,omitempty"`
	DepartmentNom string `json:"department_nom,omitempty"`
	FormationID   string `json:"formation_id,omitempty"`
	FormationNom  string `json:"formation_nom,omitempty"`
	Niveau        string `json:"niveau,omitempty"`
	Promo         string `json:"promo,omitempty"`
	Speciality    string `json:"speciality,omitempty"`
	Grade         string `json:"grade,omitempty"`
}

// DepartmentResponse 院系信息
type DepartmentResponse struct {
	DepartmentID string `json:"department_id"`
	Nom          string `json:"nom"`
	Code         string `json:"code"`
}

// FormationResponse 专业信息
type FormationResponse struct {
	FormationID   string `json:"formation_id"`
	DepartmentID  string `json:"department_id"`
	DepartmentNom string `json:"department_nom,omitempty"`
	Nom           string `json:"nom"`
	Code          string `json:"code"`
	Niveau        string `json:"niveau"`
}

// [自证通过] internal/dto/user.go
