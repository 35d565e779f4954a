package models

import (
	"time"

	"github.com/google/uuid"
)

type Temoignage struct {
	ID         int     `gorm:"column:id_tem;primaryKey;autoIncrement" json:"id_tem"`
	Client     string  `gorm:"column:client" json:"client"`
	Plateforme string  `gorm:"column:plateforme" json:"plateforme"`
	Contenu    string  `gorm:"column:contenu;type:text" json:"contenu"`
	Date       *string `gorm:"column:date" json:"date"`
	Afficher   bool    `gorm:"column:afficher" json:"afficher"`
}

func (Temoignage) TableName() string { return "temoignages" }

// Experience rows back both the CV timeline and the personal journal
// (categorie = "personnel").
type Experience struct {
	ID            int    `gorm:"column:id_exp;primaryKey;autoIncrement" json:"id_exp"`
	Titre         string `gorm:"column:titre" json:"titre"`
	Description   string `gorm:"column:description;type:text" json:"description"`
	DateDebut     string `gorm:"column:date_debut;index" json:"date_debut"`
	DateFin       string `gorm:"column:date_fin" json:"date_fin"`
	URLImg        string `gorm:"column:url_img" json:"url_img"`
	PositionImg   string `gorm:"column:position_img" json:"position_img"`
	Position      string `gorm:"column:position" json:"position"`
	Categorie     string `gorm:"column:categorie;index" json:"categorie"`
	ImgLogo       string `gorm:"column:img_logo" json:"img_logo"`
	NomEntreprise string `gorm:"column:nom_entreprise" json:"nom_entreprise"`
	URLEntreprise string `gorm:"column:url_entreprise" json:"url_entreprise"`
	TypeEmploi    string `gorm:"column:type_emploi" json:"type_emploi"`
	PosteActuel   int    `gorm:"column:poste_actuel" json:"poste_actuel"`
	Afficher      bool   `gorm:"column:afficher" json:"afficher"`
}

func (Experience) TableName() string { return "experiences" }

// AccueilGeneral is the single homepage configuration row.
type AccueilGeneral struct {
	ID           int    `gorm:"column:id_gen;primaryKey;autoIncrement" json:"id_gen"`
	Photo        string `gorm:"column:photo" json:"photo"`
	VideoDesktop string `gorm:"column:video_desktop" json:"video_desktop"`
	VideoMobile  string `gorm:"column:video_mobile" json:"video_mobile"`
	CreditNom    string `gorm:"column:credit_nom" json:"credit_nom"`
	CreditURL    string `gorm:"column:credit_url" json:"credit_url"`
	Description  string `gorm:"column:description;type:text" json:"description"`
}

func (AccueilGeneral) TableName() string { return "accueil_general" }

// AProposGeneral is the single about-page configuration row.
type AProposGeneral struct {
	ID          int    `gorm:"column:id_gen;primaryKey;autoIncrement" json:"id_gen"`
	Photo       string `gorm:"column:photo" json:"photo"`
	CreditNom   string `gorm:"column:credit_nom" json:"credit_nom"`
	CreditURL   string `gorm:"column:credit_url" json:"credit_url"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (AProposGeneral) TableName() string { return "apropos_general" }

// Outil is a tool shown on the about page.
type Outil struct {
	ID        int    `gorm:"column:id_outil;primaryKey;autoIncrement" json:"id_outil"`
	Titre     string `gorm:"column:titre" json:"titre"`
	Image     string `gorm:"column:image" json:"image"`
	Lien      string `gorm:"column:lien" json:"lien"`
	Categorie string `gorm:"column:categorie" json:"categorie"`
	Ordre     int    `gorm:"column:ordre" json:"ordre"`
	Afficher  bool   `gorm:"column:afficher" json:"afficher"`
}

func (Outil) TableName() string { return "apropos_outils" }

type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
}

func (Admin) TableName() string { return "admins" }

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Photo{}, &PhotoAlbum{}, &PhotoTag{}, &PhotoSearchTag{},
		&PhotoTagLink{}, &PhotoSearchTagLink{}, &PhotoAlbumLink{}, &PhotoAlbumTagLink{},
		&Video{}, &VideoTag{}, &VideoTagLink{},
		&Autre{}, &AutreTag{}, &AutreTagLink{},
		&Temoignage{}, &Experience{},
		&AccueilGeneral{}, &AProposGeneral{}, &Outil{},
		&Admin{},
	}
}
