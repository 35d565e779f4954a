package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/AnshRaj112/portfolio-admin/pkg/mediaurl"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const autresPath = "/creations/autres"

var hostedAutrePrefixes = []string{"/uploads/"}

type AutreInput struct {
	Title       string
	Description string
	GithubURL   string
	FigmaURL    string
	SiteURL     string
	Categorie   string
	Date        string
	Published   bool
	Thumbnail   *Upload
	Tags        []string
}

type AutreDetail struct {
	models.Autre
	Tags []models.Tag `json:"tags"`
}

// parseAutreDate accepts YYYY-MM-DD or RFC 3339. Anything else is now.
func parseAutreDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

func (b *Backoffice) AddAutre(ctx context.Context, in AutreInput) (int, error) {
	if err := requireFields(map[string]string{"title": in.Title}, "title"); err != nil {
		return 0, err
	}

	miniature := ""
	if in.Thumbnail.Present() {
		url, err := b.hostUpload(ctx, HostAutresEndpoint, in.Thumbnail, HostUploadOptions{})
		if err != nil {
			return 0, err
		}
		miniature = url
	}

	autre := models.Autre{
		Titre:       strings.TrimSpace(in.Title),
		Description: SanitizeMarkdown(in.Description),
		Miniature:   miniature,
		LienGithub:  strings.TrimSpace(in.GithubURL),
		LienFigma:   strings.TrimSpace(in.FigmaURL),
		LienSite:    strings.TrimSpace(in.SiteURL),
		Categorie:   strings.TrimSpace(in.Categorie),
		Date:        parseAutreDate(in.Date, b.now()),
		Afficher:    in.Published,
	}
	if err := b.db.WithContext(ctx).Create(&autre).Error; err != nil {
		b.log.Error("failed to add project", zap.Error(err))
		return 0, err
	}

	// a tag that cannot be stored does not cancel the project
	for _, title := range cleanTitles(in.Tags) {
		err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			id, err := findOrCreateTag(tx, AutreTags, title)
			if err != nil {
				return err
			}
			return insertLinks(tx, autreTagLinks, colAutre, autre.ID, colTag, []int{id})
		})
		if err != nil {
			b.log.Warn("failed to link project tag", zap.Int("id", autre.ID), zap.String("tag", title), zap.Error(err))
		}
	}

	b.revalidate(ctx, autresPath)
	return autre.ID, nil
}

// UpdateAutre keeps the stored thumbnail unless a new one is submitted and
// replaces every tag link.
func (b *Backoffice) UpdateAutre(ctx context.Context, id int, in AutreInput) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := requireFields(map[string]string{"title": in.Title}, "title"); err != nil {
		return err
	}

	var existing models.Autre
	if err := b.db.WithContext(ctx).First(&existing, "id_autre = ?", id).Error; err != nil {
		return notFound(err)
	}

	miniature := existing.Miniature
	if in.Thumbnail.Present() {
		url, err := b.hostUpload(ctx, HostAutresEndpoint, in.Thumbnail, HostUploadOptions{})
		if err != nil {
			return err
		}
		miniature = url
	}

	changes := map[string]interface{}{
		"titre":       strings.TrimSpace(in.Title),
		"description": SanitizeMarkdown(in.Description),
		"miniature":   miniature,
		"lien_github": strings.TrimSpace(in.GithubURL),
		"lien_figma":  strings.TrimSpace(in.FigmaURL),
		"lien_site":   strings.TrimSpace(in.SiteURL),
		"date":        parseAutreDate(in.Date, b.now()),
		"afficher":    in.Published,
	}
	if c := strings.TrimSpace(in.Categorie); c != "" {
		changes["categorie"] = c
	}

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Autre{}).Where("id_autre = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		if err := deleteLinks(tx, autreTagLinks, colAutre, id); err != nil {
			return err
		}
		return linkTagsByTitle(tx, AutreTags, autreTagLinks, colAutre, id, in.Tags)
	})
	if err != nil {
		b.log.Error("failed to update project", zap.Int("id", id), zap.Error(err))
		return err
	}

	b.deleteHosted(ctx, HostAutresEndpoint, orphanedPaths(
		[]string{existing.Miniature}, []string{miniature}, hostedAutrePrefixes,
	)...)

	b.revalidate(ctx, autresPath, fmt.Sprintf("/creations/autres/edit/%d", id))
	return nil
}

// DeleteAutre removes the project and its thumbnail. Media host uploads
// are deleted remotely, relative paths from the public directory, and
// absolute URLs are left alone.
func (b *Backoffice) DeleteAutre(ctx context.Context, id int) error {
	if err := validID(id); err != nil {
		return err
	}

	var autre models.Autre
	if err := b.db.WithContext(ctx).First(&autre, "id_autre = ?", id).Error; err != nil {
		return notFound(err)
	}

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLinks(tx, autreTagLinks, colAutre, id); err != nil {
			return err
		}
		return tx.Delete(&models.Autre{}, "id_autre = ?", id).Error
	})
	if err != nil {
		b.log.Error("failed to delete project", zap.Int("id", id), zap.Error(err))
		return err
	}

	switch thumb := autre.Miniature; {
	case thumb == "":
	case mediaurl.IsHostedUpload(thumb, hostedAutrePrefixes...):
		b.deleteHosted(ctx, HostAutresEndpoint, thumb)
	case !mediaurl.IsRemote(thumb):
		b.removeLocal(ctx, thumb)
	}

	b.revalidate(ctx, autresPath)
	return nil
}

func (b *Backoffice) ListAutres(ctx context.Context) ([]AutreDetail, error) {
	var autres []models.Autre
	if err := b.db.WithContext(ctx).Order("date DESC").Find(&autres).Error; err != nil {
		return nil, err
	}
	return b.autreDetails(ctx, autres)
}

func (b *Backoffice) GetAutre(ctx context.Context, id int) (*AutreDetail, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var autre models.Autre
	if err := b.db.WithContext(ctx).First(&autre, "id_autre = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	details, err := b.autreDetails(ctx, []models.Autre{autre})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (b *Backoffice) autreDetails(ctx context.Context, autres []models.Autre) ([]AutreDetail, error) {
	ids := make([]int, len(autres))
	for i, a := range autres {
		ids[i] = a.ID
	}
	tags, err := linkedTags(b.db.WithContext(ctx), autreTagLinks, colAutre, AutreTags.Table, ids)
	if err != nil {
		return nil, err
	}

	out := make([]AutreDetail, len(autres))
	for i, a := range autres {
		out[i] = AutreDetail{Autre: a, Tags: orEmpty(tags[a.ID])}
	}
	return out, nil
}
