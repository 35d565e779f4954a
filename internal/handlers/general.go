package handlers

import (
	"context"
	"net/http"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/AnshRaj112/portfolio-admin/internal/services"
)

type creditForm struct {
	CreditNom   string `schema:"credit_nom" validate:"max=255"`
	CreditURL   string `schema:"credit_url" validate:"omitempty,url"`
	Description string `schema:"description"`
}

type outilForm struct {
	Titre     string `schema:"titre" validate:"required,max=255"`
	Lien      string `schema:"lien" validate:"omitempty,url"`
	Categorie string `schema:"categorie"`
	Ordre     int    `schema:"ordre" validate:"gte=0"`
	Published bool   `schema:"afficher"`
}

// GetAccueilGeneral handles GET /api/accueil/general
func GetAccueilGeneral(w http.ResponseWriter, r *http.Request) {
	cachedList(w, r, "/accueil/general", func(ctx context.Context) (*models.AccueilGeneral, error) {
		return backoffice.GetAccueilGeneral(ctx)
	})
}

// UpdateAccueilGeneral handles PUT /api/accueil/general
func UpdateAccueilGeneral(w http.ResponseWriter, r *http.Request) {
	var form creditForm
	if err := decodeForm(w, r, &form); err != nil {
		writeMessageError(w, r, err)
		return
	}
	in := services.AccueilInput{
		CreditNom:   form.CreditNom,
		CreditURL:   form.CreditURL,
		Description: form.Description,
	}
	var err error
	for field, dst := range map[string]**services.Upload{
		"photo":         &in.Photo,
		"video_desktop": &in.VideoDesktop,
		"video_mobile":  &in.VideoMobile,
	} {
		if *dst, err = formFile(r, field); err != nil {
			writeMessageError(w, r, err)
			return
		}
	}

	if err := backoffice.UpdateAccueilGeneral(r.Context(), in); err != nil {
		writeMessageError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Homepage updated")
}

// GetAProposGeneral handles GET /api/a-propos/general
func GetAProposGeneral(w http.ResponseWriter, r *http.Request) {
	cachedList(w, r, "/a-propos/general", func(ctx context.Context) (*models.AProposGeneral, error) {
		return backoffice.GetAProposGeneral(ctx)
	})
}

// UpdateAProposGeneral handles PUT /api/a-propos/general
func UpdateAProposGeneral(w http.ResponseWriter, r *http.Request) {
	var form creditForm
	if err := decodeForm(w, r, &form); err != nil {
		writeMessageError(w, r, err)
		return
	}
	photo, err := formFile(r, "photo")
	if err != nil {
		writeMessageError(w, r, err)
		return
	}

	err = backoffice.UpdateAProposGeneral(r.Context(), services.AProposInput{
		Photo:       photo,
		CreditNom:   form.CreditNom,
		CreditURL:   form.CreditURL,
		Description: form.Description,
	})
	if err != nil {
		writeMessageError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "About page updated")
}

func readOutilInput(w http.ResponseWriter, r *http.Request) (services.OutilInput, error) {
	var form outilForm
	if err := decodeForm(w, r, &form); err != nil {
		return services.OutilInput{}, err
	}
	image, err := formFile(r, "image")
	if err != nil {
		return services.OutilInput{}, err
	}
	return services.OutilInput{
		Titre:     form.Titre,
		Lien:      form.Lien,
		Categorie: form.Categorie,
		Ordre:     form.Ordre,
		Published: form.Published,
		Image:     image,
	}, nil
}

// ListOutils handles GET /api/a-propos/outils
func ListOutils(w http.ResponseWriter, r *http.Request) {
	cachedList(w, r, "/a-propos/outils", backoffice.ListOutils)
}

// GetOutil handles GET /api/a-propos/outils/{id}
func GetOutil(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	outil, err := backoffice.GetOutil(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, outil)
}

// AddOutil handles POST /api/a-propos/outils
func AddOutil(w http.ResponseWriter, r *http.Request) {
	in, err := readOutilInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := backoffice.AddOutil(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, id, "Tool added")
}

// UpdateOutil handles PUT /api/a-propos/outils/{id}
func UpdateOutil(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := readOutilInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.UpdateOutil(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Tool updated")
}

// DeleteOutil handles DELETE /api/a-propos/outils/{id}
func DeleteOutil(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.DeleteOutil(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Tool deleted")
}
