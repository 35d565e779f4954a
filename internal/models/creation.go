package models

import "time"

type Video struct {
	ID          int        `gorm:"column:id_vid;primaryKey;autoIncrement" json:"id_vid"`
	Titre       string     `gorm:"column:titre" json:"titre"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Lien        string     `gorm:"column:lien" json:"lien"`
	Duree       string     `gorm:"column:duree" json:"duree"`
	Date        *time.Time `gorm:"column:date;index" json:"date"`
	Afficher    bool       `gorm:"column:afficher" json:"afficher"`
}

func (Video) TableName() string { return "videos" }

type VideoTagLink struct {
	VideoID int `gorm:"column:id_vid;primaryKey;autoIncrement:false"`
	TagID   int `gorm:"column:id_tags;primaryKey;autoIncrement:false;index"`
}

func (VideoTagLink) TableName() string { return "videos_tags_link" }

// Autre is an "other" creation: a web, design or code project.
type Autre struct {
	ID          int       `gorm:"column:id_autre;primaryKey;autoIncrement" json:"id_autre"`
	Titre       string    `gorm:"column:titre" json:"titre"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Miniature   string    `gorm:"column:miniature" json:"miniature"`
	LienGithub  string    `gorm:"column:lien_github" json:"lien_github"`
	LienFigma   string    `gorm:"column:lien_figma" json:"lien_figma"`
	LienSite    string    `gorm:"column:lien_site" json:"lien_site"`
	Categorie   string    `gorm:"column:categorie" json:"categorie"`
	Tags        string    `gorm:"column:tags" json:"-"` // legacy text column, unused
	Date        time.Time `gorm:"column:date;index" json:"date"`
	Afficher    bool      `gorm:"column:afficher" json:"afficher"`
}

func (Autre) TableName() string { return "autre" }

type AutreTagLink struct {
	AutreID int `gorm:"column:id_autre;primaryKey;autoIncrement:false"`
	TagID   int `gorm:"column:id_tags;primaryKey;autoIncrement:false;index"`
}

func (AutreTagLink) TableName() string { return "autre_tags_link" }
