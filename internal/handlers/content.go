package handlers

import (
	"net/http"

	"github.com/AnshRaj112/portfolio-admin/internal/services"
)

type temoignageForm struct {
	Client     string `schema:"client" validate:"max=255"`
	Plateforme string `schema:"plateforme" validate:"max=255"`
	Contenu    string `schema:"contenu"`
	Date       string `schema:"date"`
	Published  bool   `schema:"afficher"`
}

type journalForm struct {
	Titre         string `schema:"titre" validate:"required,max=255"`
	Description   string `schema:"description"`
	DateDebut     string `schema:"date_debut"`
	DateFin       string `schema:"date_fin"`
	MediaType     string `schema:"media_type" validate:"omitempty,oneof=image youtube none"`
	URLImg        string `schema:"url_img" validate:"omitempty,url"`
	PositionImg   string `schema:"position_img"`
	Position      string `schema:"position" validate:"omitempty,oneof=left right"`
	Categorie     string `schema:"categorie"`
	ImgLogo       string `schema:"img_logo"`
	NomEntreprise string `schema:"nom_entreprise"`
	URLEntreprise string `schema:"url_entreprise" validate:"omitempty,url"`
	TypeEmploi    string `schema:"type_emploi"`
	PosteActuel   bool   `schema:"poste_actuel"`
	Published     bool   `schema:"afficher"`
}

func readTemoignageInput(w http.ResponseWriter, r *http.Request) (services.TemoignageInput, error) {
	var form temoignageForm
	if err := decodeForm(w, r, &form); err != nil {
		return services.TemoignageInput{}, err
	}
	return services.TemoignageInput(form), nil
}

func readJournalInput(w http.ResponseWriter, r *http.Request) (services.JournalInput, error) {
	var form journalForm
	if err := decodeForm(w, r, &form); err != nil {
		return services.JournalInput{}, err
	}
	image, err := formFile(r, "image")
	if err != nil {
		return services.JournalInput{}, err
	}
	return services.JournalInput{
		Titre:         form.Titre,
		Description:   form.Description,
		DateDebut:     form.DateDebut,
		DateFin:       form.DateFin,
		MediaType:     form.MediaType,
		Image:         image,
		URLImg:        form.URLImg,
		PositionImg:   form.PositionImg,
		Position:      form.Position,
		Categorie:     form.Categorie,
		ImgLogo:       form.ImgLogo,
		NomEntreprise: form.NomEntreprise,
		URLEntreprise: form.URLEntreprise,
		TypeEmploi:    form.TypeEmploi,
		PosteActuel:   form.PosteActuel,
		Published:     form.Published,
	}, nil
}

// ListTemoignages handles GET /api/temoignages
func ListTemoignages(w http.ResponseWriter, r *http.Request) {
	cachedList(w, r, "/accueil/temoignages", backoffice.ListTemoignages)
}

// GetTemoignage handles GET /api/temoignages/{id}
func GetTemoignage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	tem, err := backoffice.GetTemoignage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, tem)
}

// AddTemoignage handles POST /api/temoignages
func AddTemoignage(w http.ResponseWriter, r *http.Request) {
	in, err := readTemoignageInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := backoffice.AddTemoignage(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, id, "Testimonial added")
}

// UpdateTemoignage handles PUT /api/temoignages/{id}
func UpdateTemoignage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := readTemoignageInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.UpdateTemoignage(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Testimonial updated")
}

// DeleteTemoignage handles DELETE /api/temoignages/{id}
func DeleteTemoignage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.DeleteTemoignage(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Testimonial deleted")
}

// ListJournal handles GET /api/journal
func ListJournal(w http.ResponseWriter, r *http.Request) {
	cachedList(w, r, "/journal-personnel", backoffice.ListJournal)
}

// GetJournalEntry handles GET /api/journal/{id}
func GetJournalEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := backoffice.GetJournalEntry(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, entry)
}

// AddJournalEntry handles POST /api/journal
func AddJournalEntry(w http.ResponseWriter, r *http.Request) {
	in, err := readJournalInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := backoffice.AddJournalEntry(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCreated(w, id, "Journal entry added")
}

// UpdateJournalEntry handles PUT /api/journal/{id}
func UpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := readJournalInput(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.UpdateJournalEntry(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Journal entry updated")
}

// DeleteJournalEntry handles DELETE /api/journal/{id}
func DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := backoffice.DeleteJournalEntry(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Journal entry deleted")
}
