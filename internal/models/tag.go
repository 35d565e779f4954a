package models

// Tag is the shared shape of every tag table. Queries pick the table with
// db.Table(...); the named types below exist so migrations create each one.
type Tag struct {
	ID        int    `gorm:"column:id_tags;primaryKey;autoIncrement" json:"id_tags"`
	Titre     string `gorm:"column:titre;index" json:"titre"`
	Important bool   `gorm:"column:important" json:"important"`
}

type PhotoTag Tag

func (PhotoTag) TableName() string { return "photos_tags" }

type PhotoSearchTag Tag

func (PhotoSearchTag) TableName() string { return "photos_tags_recherche" }

type VideoTag Tag

func (VideoTag) TableName() string { return "videos_tags" }

type AutreTag Tag

func (AutreTag) TableName() string { return "autre_tags" }
