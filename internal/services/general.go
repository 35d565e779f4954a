package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	accueilPath      = "/accueil/general"
	aproposPath      = "/a-propos/general"
	outilsPath       = "/a-propos/outils"
	accueilFolder    = "portfolio/accueil/general"
	accueilVidFolder = "portfolio/accueil/general/videos"
	aproposFolder    = "portfolio/a-propos/general"
	outilsFolder     = "portfolio/a-propos/outils"
)

// AccueilInput updates the homepage. Nil uploads keep the stored media.
type AccueilInput struct {
	Photo        *Upload
	VideoDesktop *Upload
	VideoMobile  *Upload
	CreditNom    string
	CreditURL    string
	Description  string
}

type AProposInput struct {
	Photo       *Upload
	CreditNom   string
	CreditURL   string
	Description string
}

type OutilInput struct {
	Titre     string
	Lien      string
	Categorie string
	Ordre     int
	Published bool
	Image     *Upload
}

// mediaSwap collects the CDN assets an update replaced. They are destroyed
// only once the row pointing at their replacements is saved.
type mediaSwap struct {
	replaced []string
}

// image uploads file and returns its URL. It returns current untouched when
// no file was sent.
func (m *mediaSwap) image(ctx context.Context, b *Backoffice, file *Upload, folder, current string) (string, error) {
	if !file.Present() {
		return current, nil
	}
	asset, err := b.cdnUploadImage(ctx, file, folder, SectionImageTransform)
	if err != nil {
		return "", err
	}
	m.replaced = append(m.replaced, current)
	return asset.URL, nil
}

func (m *mediaSwap) video(ctx context.Context, b *Backoffice, file *Upload, folder, current string) (string, error) {
	if !file.Present() {
		return current, nil
	}
	asset, err := b.cdnUploadVideo(ctx, file, folder, SectionVideoTransform)
	if err != nil {
		return "", err
	}
	m.replaced = append(m.replaced, current)
	return asset.URL, nil
}

func (m *mediaSwap) commit(ctx context.Context, b *Backoffice) {
	for _, u := range m.replaced {
		b.destroyReplaced(ctx, u)
	}
}

// firstRow loads the singleton into dst. A missing row is not an error.
func firstRow(db *gorm.DB, dst interface{}) error {
	err := db.Order("id_gen ASC").Limit(1).Find(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (b *Backoffice) GetAccueilGeneral(ctx context.Context) (*models.AccueilGeneral, error) {
	var gen models.AccueilGeneral
	if err := firstRow(b.db.WithContext(ctx), &gen); err != nil {
		return nil, err
	}
	return &gen, nil
}

// UpdateAccueilGeneral uploads whichever media were sent, then upserts the
// homepage row. An upload failure leaves the row and its media unchanged.
func (b *Backoffice) UpdateAccueilGeneral(ctx context.Context, in AccueilInput) error {
	gen, err := b.GetAccueilGeneral(ctx)
	if err != nil {
		return err
	}

	var swap mediaSwap
	if gen.Photo, err = swap.image(ctx, b, in.Photo, accueilFolder, gen.Photo); err != nil {
		return fmt.Errorf("photo: %w", err)
	}
	if gen.VideoDesktop, err = swap.video(ctx, b, in.VideoDesktop, accueilVidFolder, gen.VideoDesktop); err != nil {
		return fmt.Errorf("video_desktop: %w", err)
	}
	if gen.VideoMobile, err = swap.video(ctx, b, in.VideoMobile, accueilVidFolder, gen.VideoMobile); err != nil {
		return fmt.Errorf("video_mobile: %w", err)
	}
	gen.CreditNom = strings.TrimSpace(in.CreditNom)
	gen.CreditURL = strings.TrimSpace(in.CreditURL)
	gen.Description = SanitizeMarkdown(in.Description)

	if err := b.db.WithContext(ctx).Save(gen).Error; err != nil {
		b.log.Error("failed to save homepage settings", zap.Error(err))
		return err
	}
	swap.commit(ctx, b)

	b.revalidate(ctx, accueilPath)
	return nil
}

func (b *Backoffice) GetAProposGeneral(ctx context.Context) (*models.AProposGeneral, error) {
	var gen models.AProposGeneral
	if err := firstRow(b.db.WithContext(ctx), &gen); err != nil {
		return nil, err
	}
	return &gen, nil
}

func (b *Backoffice) UpdateAProposGeneral(ctx context.Context, in AProposInput) error {
	gen, err := b.GetAProposGeneral(ctx)
	if err != nil {
		return err
	}

	var swap mediaSwap
	if gen.Photo, err = swap.image(ctx, b, in.Photo, aproposFolder, gen.Photo); err != nil {
		return fmt.Errorf("photo: %w", err)
	}
	gen.CreditNom = strings.TrimSpace(in.CreditNom)
	gen.CreditURL = strings.TrimSpace(in.CreditURL)
	gen.Description = SanitizeMarkdown(in.Description)

	if err := b.db.WithContext(ctx).Save(gen).Error; err != nil {
		b.log.Error("failed to save about page settings", zap.Error(err))
		return err
	}
	swap.commit(ctx, b)

	b.revalidate(ctx, aproposPath)
	return nil
}

func (b *Backoffice) ListOutils(ctx context.Context) ([]models.Outil, error) {
	outils := []models.Outil{}
	if err := b.db.WithContext(ctx).Order("ordre ASC, titre ASC").Find(&outils).Error; err != nil {
		return nil, err
	}
	return outils, nil
}

func (b *Backoffice) GetOutil(ctx context.Context, id int) (*models.Outil, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var outil models.Outil
	if err := b.db.WithContext(ctx).First(&outil, "id_outil = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &outil, nil
}

func (b *Backoffice) AddOutil(ctx context.Context, in OutilInput) (int, error) {
	if err := requireFields(map[string]string{"titre": in.Titre}, "titre"); err != nil {
		return 0, err
	}

	var swap mediaSwap
	image, err := swap.image(ctx, b, in.Image, outilsFolder, "")
	if err != nil {
		return 0, err
	}

	outil := models.Outil{
		Titre:     strings.TrimSpace(in.Titre),
		Image:     image,
		Lien:      strings.TrimSpace(in.Lien),
		Categorie: strings.TrimSpace(in.Categorie),
		Ordre:     in.Ordre,
		Afficher:  in.Published,
	}
	if err := b.db.WithContext(ctx).Create(&outil).Error; err != nil {
		return 0, err
	}

	b.revalidate(ctx, outilsPath)
	return outil.ID, nil
}

func (b *Backoffice) UpdateOutil(ctx context.Context, id int, in OutilInput) error {
	existing, err := b.GetOutil(ctx, id)
	if err != nil {
		return err
	}
	if err := requireFields(map[string]string{"titre": in.Titre}, "titre"); err != nil {
		return err
	}

	var swap mediaSwap
	image, err := swap.image(ctx, b, in.Image, outilsFolder, existing.Image)
	if err != nil {
		return err
	}

	err = b.db.WithContext(ctx).Model(&models.Outil{}).Where("id_outil = ?", id).Updates(map[string]interface{}{
		"titre":     strings.TrimSpace(in.Titre),
		"image":     image,
		"lien":      strings.TrimSpace(in.Lien),
		"categorie": strings.TrimSpace(in.Categorie),
		"ordre":     in.Ordre,
		"afficher":  in.Published,
	}).Error
	if err != nil {
		return err
	}
	swap.commit(ctx, b)

	b.revalidate(ctx, outilsPath, fmt.Sprintf("/a-propos/outils/edit/%d", id))
	return nil
}

func (b *Backoffice) DeleteOutil(ctx context.Context, id int) error {
	existing, err := b.GetOutil(ctx, id)
	if err != nil {
		return err
	}

	if err := b.db.WithContext(ctx).Delete(&models.Outil{}, "id_outil = ?", id).Error; err != nil {
		return err
	}
	b.destroyReplaced(ctx, existing.Image)

	b.revalidate(ctx, outilsPath)
	return nil
}
