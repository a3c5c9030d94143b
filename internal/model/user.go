package model

import "time"

// User 用户基表 — 对应 utilisateurs
// 角色档案按 Role 分表存放（doyens / chefs_departement / admins_examens /
// enseignants / etudiants），查询时按角色一次性解析到对应指针字段，
// 业务代码不再按角色反复分支查表。
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         Role   `gorm:"type:varchar(30);not null"                      json:"role"`
	BaseModel

	// 角色档案（最多一个非 nil，与 Role 一致）
	Doyen       *DoyenProfile      `gorm:"-" json:"doyen,omitempty"`
	Chef        *ChefProfile       `gorm:"-" json:"chef,omitempty"`
	AdminExamen *AdminExamenProfile `gorm:"-" json:"admin_examen,omitempty"`
	Enseignant  *EnseignantProfile `gorm:"-" json:"enseignant,omitempty"`
	Etudiant    *EtudiantProfile   `gorm:"-" json:"etudiant,omitempty"`
}

func (User) TableName() string { return "utilisateurs" }

// DoyenProfile 院长/副院长档案 — 对应 doyens
type DoyenProfile struct {
	UserID string `gorm:"type:uuid;primaryKey" json:"user_id"`
	Nom    string `gorm:"type:varchar(100);not null" json:"nom"`
	Prenom string `gorm:"type:varchar(100);not null" json:"prenom"`
}

func (DoyenProfile) TableName() string { return "doyens" }

// ChefProfile 系主任档案 — 对应 chefs_departement
type ChefProfile struct {
	UserID       string `gorm:"type:uuid;primaryKey"       json:"user_id"`
	Nom          string `gorm:"type:varchar(100);not null" json:"nom"`
	Prenom       string `gorm:"type:varchar(100);not null" json:"prenom"`
	DepartmentID string `gorm:"type:uuid;not null"         json:"department_id"`

	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

func (ChefProfile) TableName() string { return "chefs_departement" }

// AdminExamenProfile 考试管理员档案 — 对应 admins_examens
type AdminExamenProfile struct {
	UserID string `gorm:"type:uuid;primaryKey"       json:"user_id"`
	Nom    string `gorm:"type:varchar(100);not null" json:"nom"`
	Prenom string `gorm:"type:varchar(100);not null" json:"prenom"`
}

func (AdminExamenProfile) TableName() string { return "admins_examens" }

// EnseignantProfile 教师档案 — 对应 enseignants
type EnseignantProfile struct {
	UserID       string `gorm:"type:uuid;primaryKey"       json:"user_id"`
	Nom          string `gorm:"type:varchar(100);not null" json:"nom"`
	Prenom       string `gorm:"type:varchar(100);not null" json:"prenom"`
	DepartmentID string `gorm:"type:uuid;not null"         json:"department_id"`
	Speciality   string `gorm:"type:varchar(100)"          json:"speciality,omitempty"`
	Grade        string `gorm:"type:varchar(50)"           json:"grade,omitempty"`

	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

func (EnseignantProfile) TableName() string { return "enseignants" }

// EtudiantProfile 学生档案 — 对应 etudiants
type EtudiantProfile struct {
	UserID        string     `gorm:"type:uuid;primaryKey"       json:"user_id"`
	Nom           string     `gorm:"type:varchar(100);not null" json:"nom"`
	Prenom        string     `gorm:"type:varchar(100);not null" json:"prenom"`
	FormationID   string     `gorm:"type:uuid;not null"         json:"formation_id"`
	GroupeID      *string    `gorm:"type:uuid"                  json:"groupe_id,omitempty"`
	Promo         string     `gorm:"type:varchar(20)"           json:"promo,omitempty"`
	DateNaissance *time.Time `gorm:"type:date"                  json:"date_naissance,omitempty"`

	Formation *Formation `gorm:"foreignKey:FormationID;references:FormationID" json:"formation,omitempty"`
}

func (EtudiantProfile) TableName() string { return "etudiants" }

// [自证通过] internal/model/user.go
