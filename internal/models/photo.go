package models

import "time"

// Photo is one picture of the photography section. LienHigh/LienLow are
// paths returned by the portfolio media host.
type Photo struct {
	ID        int       `gorm:"column:id_pho;primaryKey;autoIncrement" json:"id_pho"`
	LienHigh  string    `gorm:"column:lien_high;type:text" json:"lien_high"`
	LienLow   *string   `gorm:"column:lien_low;type:text" json:"lien_low"`
	Largeur   int       `gorm:"column:largeur" json:"largeur"`
	Hauteur   int       `gorm:"column:hauteur" json:"hauteur"`
	Alt       string    `gorm:"column:alt;type:text" json:"alt"`
	DateAjout time.Time `gorm:"column:date_ajout;index" json:"date_ajout"`
	Afficher  bool      `gorm:"column:afficher" json:"afficher"`
}

func (Photo) TableName() string { return "photos" }

// LowRes returns the low resolution link or "" when none was generated.
func (p Photo) LowRes() string {
	if p.LienLow == nil {
		return ""
	}
	return *p.LienLow
}

type PhotoAlbum struct {
	ID          int        `gorm:"column:id_alb;primaryKey;autoIncrement" json:"id_alb"`
	Titre       string     `gorm:"column:titre" json:"titre"`
	Description *string    `gorm:"column:description;type:text" json:"description"`
	Date        *time.Time `gorm:"column:date;index" json:"date"`
	Afficher    bool       `gorm:"column:afficher" json:"afficher"`
}

func (PhotoAlbum) TableName() string { return "photos_albums" }

type PhotoTagLink struct {
	PhotoID int `gorm:"column:id_pho;primaryKey;autoIncrement:false"`
	TagID   int `gorm:"column:id_tags;primaryKey;autoIncrement:false;index"`
}

func (PhotoTagLink) TableName() string { return "photos_tags_link" }

type PhotoSearchTagLink struct {
	PhotoID int `gorm:"column:id_pho;primaryKey;autoIncrement:false"`
	TagID   int `gorm:"column:id_tags;primaryKey;autoIncrement:false;index"`
}

func (PhotoSearchTagLink) TableName() string { return "photos_tags_recherche_link" }

type PhotoAlbumLink struct {
	PhotoID int `gorm:"column:id_pho;primaryKey;autoIncrement:false"`
	AlbumID int `gorm:"column:id_alb;primaryKey;autoIncrement:false;index"`
}

func (PhotoAlbumLink) TableName() string { return "photos_albums_link" }

type PhotoAlbumTagLink struct {
	AlbumID int `gorm:"column:id_alb;primaryKey;autoIncrement:false"`
	TagID   int `gorm:"column:id_tags;primaryKey;autoIncrement:false;index"`
}

func (PhotoAlbumTagLink) TableName() string { return "photos_albums_tags_link" }
