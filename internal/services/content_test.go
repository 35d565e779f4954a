package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemoignages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.b.AddTemoignage(ctx, TemoignageInput{Plateforme: "Malt"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"client", "contenu"}, verr.Fields)

	first, err := f.b.AddTemoignage(ctx, TemoignageInput{Client: "Léa", Contenu: "Top", Date: "2023-02-01"})
	require.NoError(t, err)
	second, err := f.b.AddTemoignage(ctx, TemoignageInput{Client: "Tom", Contenu: "Bien", Published: true})
	require.NoError(t, err)

	list, err := f.b.ListTemoignages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Nil(t, list[0].Date)
	require.NotNil(t, list[1].Date)
	assert.Equal(t, "2023-02-01", *list[1].Date)

	require.NoError(t, f.b.UpdateTemoignage(ctx, first, TemoignageInput{Client: "Léa B.", Contenu: "Top", Published: true}))
	tem, err := f.b.GetTemoignage(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Léa B.", tem.Client)
	assert.Nil(t, tem.Date)
	assert.True(t, tem.Afficher)

	assert.ErrorIs(t, f.b.UpdateTemoignage(ctx, 99, TemoignageInput{Client: "a", Contenu: "b"}), ErrNotFound)
	require.NoError(t, f.b.DeleteTemoignage(ctx, first))
	assert.ErrorIs(t, f.b.DeleteTemoignage(ctx, first), ErrNotFound)
}

func TestJournalMediaTypes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.b.AddJournalEntry(ctx, JournalInput{
		Titre:       "Road trip",
		DateDebut:   "2024-01-10",
		MediaType:   MediaTypeImage,
		Image:       upload("trip.jpg"),
		PosteActuel: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{HostJournalEndpoint}, f.host.uploads)

	entry, err := f.b.GetJournalEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/photos/1-trip.jpg", entry.URLImg)
	assert.Equal(t, "centre", entry.PositionImg)
	assert.Equal(t, "left", entry.Position)
	assert.Equal(t, "personnel", entry.Categorie)
	assert.Equal(t, 1, entry.PosteActuel)

	// no media type keeps the image
	require.NoError(t, f.b.UpdateJournalEntry(ctx, id, JournalInput{Titre: "Road trip", Position: "right"}))
	entry, err = f.b.GetJournalEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/photos/1-trip.jpg", entry.URLImg)
	assert.Equal(t, "right", entry.Position)
	assert.Equal(t, 0, entry.PosteActuel)

	require.NoError(t, f.b.UpdateJournalEntry(ctx, id, JournalInput{Titre: "Road trip", MediaType: MediaTypeYoutube, URLImg: "https://youtu.be/v"}))
	entry, err = f.b.GetJournalEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/v", entry.URLImg)

	require.NoError(t, f.b.UpdateJournalEntry(ctx, id, JournalInput{Titre: "Road trip", MediaType: MediaTypeNone}))
	entry, err = f.b.GetJournalEntry(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, entry.URLImg)
	assert.Equal(t, []string{journalPath, journalPath, journalPath, journalPath}, f.pages.paths)
}

func TestJournalOnlyTouchesPersonalEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	work := models.Experience{Titre: "Agency", Categorie: "pro", DateDebut: "2020-01-01"}
	require.NoError(t, f.db.Create(&work).Error)
	_, err := f.b.AddJournalEntry(ctx, JournalInput{Titre: "older", DateDebut: "2019-05-01"})
	require.NoError(t, err)
	newer, err := f.b.AddJournalEntry(ctx, JournalInput{Titre: "newer", DateDebut: "2024-05-01"})
	require.NoError(t, err)

	list, err := f.b.ListJournal(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].ID)

	assert.ErrorIs(t, f.b.DeleteJournalEntry(ctx, work.ID), ErrNotFound)
	_, err = f.b.GetJournalEntry(ctx, work.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.b.UpdateJournalEntry(ctx, work.ID, JournalInput{Titre: "x"}), ErrNotFound)

	var stored models.Experience
	require.NoError(t, f.db.First(&stored, "id_exp = ?", work.ID).Error)
	assert.Equal(t, "Agency", stored.Titre)
	assert.Equal(t, "pro", stored.Categorie)
	require.NoError(t, f.b.DeleteJournalEntry(ctx, newer))

	_, err = f.b.AddJournalEntry(ctx, JournalInput{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateAccueilGeneralReplacesMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.b.UpdateAccueilGeneral(ctx, AccueilInput{
		Photo:        upload("hero.jpg"),
		VideoDesktop: upload("wide.mp4"),
		CreditNom:    "Studio",
		Description:  "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{accueilFolder, accueilVidFolder}, f.cdn.folders)
	assert.Empty(t, f.cdn.destroyed)

	gen, err := f.b.GetAccueilGeneral(ctx)
	require.NoError(t, err)
	firstID := gen.ID
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v17/portfolio/accueil/general/asset1.webp", gen.Photo)
	assert.Empty(t, gen.VideoMobile)

	err = f.b.UpdateAccueilGeneral(ctx, AccueilInput{Photo: upload("hero2.jpg"), VideoMobile: upload("tall.mp4"), CreditNom: "Studio"})
	require.NoError(t, err)
	assert.Equal(t, []string{"image:portfolio/accueil/general/asset1"}, f.cdn.destroyed)

	gen, err = f.b.GetAccueilGeneral(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstID, gen.ID)
	assert.Contains(t, gen.Photo, "asset3")
	assert.Contains(t, gen.VideoDesktop, "asset2")
	assert.Contains(t, gen.VideoMobile, "asset4")
	assert.Empty(t, gen.Description)

	var n int64
	f.db.Model(&models.AccueilGeneral{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestUpdateAccueilGeneralKeepsRowOnUploadFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.b.UpdateAccueilGeneral(ctx, AccueilInput{CreditNom: "before"}))
	f.cdn.fail = true

	err := f.b.UpdateAccueilGeneral(ctx, AccueilInput{Photo: upload("x.jpg"), CreditNom: "after"})
	require.Error(t, err)

	gen, err := f.b.GetAccueilGeneral(ctx)
	require.NoError(t, err)
	assert.Equal(t, "before", gen.CreditNom)
	assert.Equal(t, []string{accueilPath}, f.pages.paths)
}

func TestUpdateAccueilGeneralKeepsOldMediaWhenALaterUploadFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.b.UpdateAccueilGeneral(ctx, AccueilInput{Photo: upload("hero.jpg"), CreditNom: "before"}))
	before, err := f.b.GetAccueilGeneral(ctx)
	require.NoError(t, err)

	// the new photo uploads, the desktop video does not
	f.cdn.failFrom = 3
	err = f.b.UpdateAccueilGeneral(ctx, AccueilInput{
		Photo:        upload("hero2.jpg"),
		VideoDesktop: upload("wide.mp4"),
		CreditNom:    "after",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "video_desktop")
	assert.Empty(t, f.cdn.destroyed)

	gen, err := f.b.GetAccueilGeneral(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Photo, gen.Photo)
	assert.Equal(t, "before", gen.CreditNom)
}

func TestUpdateAProposGeneral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.b.UpdateAProposGeneral(ctx, AProposInput{Photo: upload("me.jpg"), Description: "Bio"}))
	require.NoError(t, f.b.UpdateAProposGeneral(ctx, AProposInput{Photo: upload("me2.jpg"), Description: "Bio"}))

	gen, err := f.b.GetAProposGeneral(ctx)
	require.NoError(t, err)
	assert.Contains(t, gen.Photo, "portfolio/a-propos/general/asset2")
	assert.Equal(t, []string{"image:portfolio/a-propos/general/asset1"}, f.cdn.destroyed)
	assert.Equal(t, []string{aproposPath, aproposPath}, f.pages.paths)
}

func TestOutils(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	figma, err := f.b.AddOutil(ctx, OutilInput{Titre: "Figma", Ordre: 2, Image: upload("figma.svg")})
	require.NoError(t, err)
	_, err = f.b.AddOutil(ctx, OutilInput{Titre: "Blender", Ordre: 2})
	require.NoError(t, err)
	_, err = f.b.AddOutil(ctx, OutilInput{Titre: "Go", Ordre: 1})
	require.NoError(t, err)

	list, err := f.b.ListOutils(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Go", "Blender", "Figma"}, []string{list[0].Titre, list[1].Titre, list[2].Titre})

	require.NoError(t, f.b.UpdateOutil(ctx, figma, OutilInput{Titre: "Figma", Ordre: 0, Image: upload("figma2.svg")}))
	assert.Equal(t, []string{"image:portfolio/a-propos/outils/asset1"}, f.cdn.destroyed)
	assert.Contains(t, f.pages.paths, "/a-propos/outils/edit/1")

	require.NoError(t, f.b.DeleteOutil(ctx, figma))
	assert.Equal(t, "image:portfolio/a-propos/outils/asset2", f.cdn.destroyed[1])
	_, err = f.b.GetOutil(ctx, figma)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.b.AddOutil(ctx, OutilInput{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
