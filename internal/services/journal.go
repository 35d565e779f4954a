package services

import (
	"context"
	"strings"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"go.uber.org/zap"
)

const (
	journalPath      = "/journal-personnel"
	journalCategorie = "personnel"

	MediaTypeImage   = "image"
	MediaTypeYoutube = "youtube"
	MediaTypeNone    = "none"
)

// JournalInput is a personal journal entry. MediaType selects where
// url_img comes from: an uploaded image, a YouTube link or nothing.
type JournalInput struct {
	Titre         string
	Description   string
	DateDebut     string
	DateFin       string
	MediaType     string
	Image         *Upload
	URLImg        string
	PositionImg   string
	Position      string
	Categorie     string
	ImgLogo       string
	NomEntreprise string
	URLEntreprise string
	TypeEmploi    string
	PosteActuel   bool
	Published     bool
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func (in JournalInput) row(urlImg string) models.Experience {
	poste := 0
	if in.PosteActuel {
		poste = 1
	}
	return models.Experience{
		Titre:         strings.TrimSpace(in.Titre),
		Description:   SanitizeMarkdown(in.Description),
		DateDebut:     strings.TrimSpace(in.DateDebut),
		DateFin:       strings.TrimSpace(in.DateFin),
		URLImg:        urlImg,
		PositionImg:   orDefault(in.PositionImg, "centre"),
		Position:      orDefault(in.Position, "left"),
		Categorie:     orDefault(in.Categorie, journalCategorie),
		ImgLogo:       strings.TrimSpace(in.ImgLogo),
		NomEntreprise: strings.TrimSpace(in.NomEntreprise),
		URLEntreprise: strings.TrimSpace(in.URLEntreprise),
		TypeEmploi:    strings.TrimSpace(in.TypeEmploi),
		PosteActuel:   poste,
		Afficher:      in.Published,
	}
}

// journalMedia resolves url_img. current is returned when the form does
// not change the media.
func (b *Backoffice) journalMedia(ctx context.Context, in JournalInput, current string) (string, error) {
	switch in.MediaType {
	case MediaTypeImage:
		if !in.Image.Present() {
			b.log.Warn("journal media type is image but no file was sent")
			return current, nil
		}
		return b.hostUpload(ctx, HostJournalEndpoint, in.Image, HostUploadOptions{})
	case MediaTypeYoutube:
		return strings.TrimSpace(in.URLImg), nil
	case MediaTypeNone:
		return "", nil
	}
	return current, nil
}

func (b *Backoffice) AddJournalEntry(ctx context.Context, in JournalInput) (int, error) {
	if err := requireFields(map[string]string{"titre": in.Titre}, "titre"); err != nil {
		return 0, err
	}

	urlImg, err := b.journalMedia(ctx, in, "")
	if err != nil {
		return 0, err
	}

	entry := in.row(urlImg)
	if err := b.db.WithContext(ctx).Create(&entry).Error; err != nil {
		b.log.Error("failed to add journal entry", zap.Error(err))
		return 0, err
	}

	b.revalidate(ctx, journalPath)
	return entry.ID, nil
}

// UpdateJournalEntry only updates personal entries.
func (b *Backoffice) UpdateJournalEntry(ctx context.Context, id int, in JournalInput) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := requireFields(map[string]string{"titre": in.Titre}, "titre"); err != nil {
		return err
	}

	existing, err := b.GetJournalEntry(ctx, id)
	if err != nil {
		return err
	}

	urlImg, err := b.journalMedia(ctx, in, existing.URLImg)
	if err != nil {
		return err
	}

	entry := in.row(urlImg)
	changes := map[string]interface{}{
		"titre":          entry.Titre,
		"description":    entry.Description,
		"date_debut":     entry.DateDebut,
		"date_fin":       entry.DateFin,
		"url_img":        entry.URLImg,
		"position_img":   entry.PositionImg,
		"position":       entry.Position,
		"categorie":      entry.Categorie,
		"img_logo":       entry.ImgLogo,
		"nom_entreprise": entry.NomEntreprise,
		"url_entreprise": entry.URLEntreprise,
		"type_emploi":    entry.TypeEmploi,
		"poste_actuel":   entry.PosteActuel,
		"afficher":       entry.Afficher,
	}
	err = b.db.WithContext(ctx).Model(&models.Experience{}).
		Where("id_exp = ? AND categorie = ?", id, journalCategorie).
		Updates(changes).Error
	if err != nil {
		b.log.Error("failed to update journal entry", zap.Int("id", id), zap.Error(err))
		return err
	}

	b.revalidate(ctx, journalPath)
	return nil
}

// DeleteJournalEntry only deletes personal entries.
func (b *Backoffice) DeleteJournalEntry(ctx context.Context, id int) error {
	if err := validID(id); err != nil {
		return err
	}

	res := b.db.WithContext(ctx).
		Where("categorie = ?", journalCategorie).
		Delete(&models.Experience{}, "id_exp = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	b.revalidate(ctx, journalPath)
	return nil
}

func (b *Backoffice) ListJournal(ctx context.Context) ([]models.Experience, error) {
	entries := []models.Experience{}
	err := b.db.WithContext(ctx).
		Where("categorie = ?", journalCategorie).
		Order("date_debut DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *Backoffice) GetJournalEntry(ctx context.Context, id int) (*models.Experience, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var entry models.Experience
	err := b.db.WithContext(ctx).
		Where("categorie = ?", journalCategorie).
		First(&entry, "id_exp = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}
