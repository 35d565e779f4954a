package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
)

const temoignagesPath = "/accueil/temoignages"

type TemoignageInput struct {
	Client     string
	Plateforme string
	Contenu    string
	Date       string
	Published  bool
}

func (in TemoignageInput) row() models.Temoignage {
	tem := models.Temoignage{
		Client:     strings.TrimSpace(in.Client),
		Plateforme: strings.TrimSpace(in.Plateforme),
		Contenu:    SanitizeMarkdown(in.Contenu),
		Afficher:   in.Published,
	}
	if d := strings.TrimSpace(in.Date); d != "" {
		tem.Date = &d
	}
	return tem
}

func (in TemoignageInput) validate() error {
	return requireFields(map[string]string{"client": in.Client, "contenu": in.Contenu}, "client", "contenu")
}

func (b *Backoffice) AddTemoignage(ctx context.Context, in TemoignageInput) (int, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	tem := in.row()
	if err := b.db.WithContext(ctx).Create(&tem).Error; err != nil {
		return 0, err
	}

	b.revalidate(ctx, temoignagesPath)
	return tem.ID, nil
}

func (b *Backoffice) UpdateTemoignage(ctx context.Context, id int, in TemoignageInput) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := in.validate(); err != nil {
		return err
	}

	tem := in.row()
	res := b.db.WithContext(ctx).Model(&models.Temoignage{}).Where("id_tem = ?", id).Updates(map[string]interface{}{
		"client":     tem.Client,
		"plateforme": tem.Plateforme,
		"contenu":    tem.Contenu,
		"date":       tem.Date,
		"afficher":   tem.Afficher,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	b.revalidate(ctx, temoignagesPath, fmt.Sprintf("/accueil/temoignages/edit/%d", id))
	return nil
}

func (b *Backoffice) DeleteTemoignage(ctx context.Context, id int) error {
	if err := validID(id); err != nil {
		return err
	}

	res := b.db.WithContext(ctx).Delete(&models.Temoignage{}, "id_tem = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	b.revalidate(ctx, temoignagesPath)
	return nil
}

func (b *Backoffice) ListTemoignages(ctx context.Context) ([]models.Temoignage, error) {
	tems := []models.Temoignage{}
	if err := b.db.WithContext(ctx).Order("id_tem DESC").Find(&tems).Error; err != nil {
		return nil, err
	}
	return tems, nil
}

func (b *Backoffice) GetTemoignage(ctx context.Context, id int) (*models.Temoignage, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var tem models.Temoignage
	if err := b.db.WithContext(ctx).First(&tem, "id_tem = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tem, nil
}
