package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TagKind describes one of the four tag tables: where tags live, which
// link tables reference them and which pages list them.
type TagKind struct {
	Name  string
	Table string
	Links []string
	Paths []string
}

var (
	PhotoTags = TagKind{
		Name:  "photos",
		Table: "photos_tags",
		Links: []string{photoTagLinks, albumTagLinks},
		Paths: []string{"/creations/photos/tags"},
	}
	PhotoSearchTags = TagKind{
		Name:  "photos-search",
		Table: "photos_tags_recherche",
		Links: []string{photoSearchTagLinks},
		Paths: []string{"/creations/photos/search-tags"},
	}
	VideoTags = TagKind{
		Name:  "videos",
		Table: "videos_tags",
		Links: []string{videoTagLinks},
		Paths: []string{"/creations/videos/tags", "/creations/videos"},
	}
	AutreTags = TagKind{
		Name:  "autres",
		Table: "autre_tags",
		Links: []string{autreTagLinks},
		Paths: []string{"/creations/autres/tags", "/creations/autres"},
	}
)

var tagKinds = map[string]TagKind{
	PhotoTags.Name:       PhotoTags,
	PhotoSearchTags.Name: PhotoSearchTags,
	VideoTags.Name:       VideoTags,
	AutreTags.Name:       AutreTags,
}

// TagKindByName resolves the {kind} URL segment.
func TagKindByName(name string) (TagKind, bool) {
	k, ok := tagKinds[name]
	return k, ok
}

// TagUsage is a tag with the number of items linked to it.
type TagUsage struct {
	models.Tag
	Usage int64 `gorm:"column:usage_count" json:"usage"`
}

func (b *Backoffice) ListTags(ctx context.Context, kind TagKind) ([]TagUsage, error) {
	tags := []TagUsage{}
	err := b.db.WithContext(ctx).
		Table(kind.Table+" AS t").
		Select("t.id_tags, t.titre, t.important, COUNT(l.id_tags) AS usage_count").
		Joins("LEFT JOIN "+kind.Links[0]+" AS l ON l.id_tags = t.id_tags").
		Group("t.id_tags, t.titre, t.important").
		Order("t.titre ASC").
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag inserts a tag. A tag with the same title yields a
// *DuplicateTagError carrying the existing id.
func (b *Backoffice) CreateTag(ctx context.Context, kind TagKind, title string, important bool) (*models.Tag, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Fields: []string{"title"}}
	}

	db := b.db.WithContext(ctx)
	var existing models.Tag
	err := db.Table(kind.Table).Where("titre = ?", title).Take(&existing).Error
	if err == nil {
		return nil, &DuplicateTagError{ID: existing.ID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := models.Tag{Titre: title, Important: important}
	if err := db.Table(kind.Table).Create(&tag).Error; err != nil {
		b.log.Error("failed to create tag", zap.String("kind", kind.Name), zap.String("title", title), zap.Error(err))
		return nil, err
	}

	b.revalidate(ctx, kind.Paths...)
	return &tag, nil
}

// UpdateTag renames a tag. important is only written when non-nil.
func (b *Backoffice) UpdateTag(ctx context.Context, kind TagKind, id int, title string, important *bool) error {
	if err := validID(id); err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return &ValidationError{Fields: []string{"title"}}
	}

	changes := map[string]interface{}{"titre": title}
	if important != nil {
		changes["important"] = *important
	}

	res := b.db.WithContext(ctx).Table(kind.Table).Where("id_tags = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	b.revalidate(ctx, kind.Paths...)
	return nil
}

// DeleteTag removes the links that reference the tag, then the tag.
func (b *Backoffice) DeleteTag(ctx context.Context, kind TagKind, id int) error {
	if err := validID(id); err != nil {
		return err
	}

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, link := range kind.Links {
			if err := deleteLinks(tx, link, colTag, id); err != nil {
				return err
			}
		}
		res := tx.Exec("DELETE FROM "+kind.Table+" WHERE id_tags = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.revalidate(ctx, kind.Paths...)
	return nil
}

// findOrCreateTag returns the id of the tag titled title, creating it when
// missing.
func findOrCreateTag(tx *gorm.DB, kind TagKind, title string) (int, error) {
	var tag models.Tag
	err := tx.Table(kind.Table).Where("titre = ?", title).Take(&tag).Error
	if err == nil {
		return tag.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	tag = models.Tag{Titre: title}
	if err := tx.Table(kind.Table).Create(&tag).Error; err != nil {
		return 0, err
	}
	return tag.ID, nil
}

func cleanTitles(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
