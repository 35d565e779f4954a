package routes

import (
	"net/http"

	"github.com/AnshRaj112/portfolio-admin/internal/handlers"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the API. requireAdmin guards every route except
// sign-in and the websocket feed, which authenticates itself.
func SetupRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Post("/api/admin/signin", handlers.AdminSignin)

	// Live page revalidation feed (Redis Pub/Sub → websocket)
	r.Get("/ws/revalidations", handlers.RevalidationWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)

		// Admin session
		r.Post("/api/admin/signout", handlers.AdminSignout)
		r.Get("/api/admin/me", handlers.AdminMe)

		// Photos
		r.Get("/api/photos", handlers.ListPhotos)
		r.Post("/api/photos", handlers.AddPhoto)
		r.Post("/api/photos/batch", handlers.BatchUploadPhotos)
		r.Get("/api/photos/{id}", handlers.GetPhoto)
		r.Put("/api/photos/{id}", handlers.UpdatePhoto)
		r.Delete("/api/photos/{id}", handlers.DeletePhoto)

		// Albums
		r.Get("/api/albums", handlers.ListAlbums)
		r.Post("/api/albums", handlers.CreateAlbum)
		r.Get("/api/albums/{id}", handlers.GetAlbum)
		r.Put("/api/albums/{id}", handlers.UpdateAlbum)
		r.Delete("/api/albums/{id}", handlers.DeleteAlbum)
		r.Delete("/api/albums/{albumID}/photos/{id}", handlers.RemovePhotoFromAlbum)

		// Tags: {kind} is photos, photos-search, videos or autres
		r.Get("/api/tags/{kind}", handlers.ListTags)
		r.Post("/api/tags/{kind}", handlers.CreateTag)
		r.Put("/api/tags/{kind}/{id}", handlers.UpdateTag)
		r.Delete("/api/tags/{kind}/{id}", handlers.DeleteTag)

		// Videos
		r.Get("/api/videos", handlers.ListVideos)
		r.Post("/api/videos", handlers.AddVideo)
		r.Get("/api/videos/{id}", handlers.GetVideo)
		r.Put("/api/videos/{id}", handlers.UpdateVideo)
		r.Delete("/api/videos/{id}", handlers.DeleteVideo)

		// Other creations
		r.Get("/api/autres", handlers.ListAutres)
		r.Post("/api/autres", handlers.AddAutre)
		r.Get("/api/autres/{id}", handlers.GetAutre)
		r.Put("/api/autres/{id}", handlers.UpdateAutre)
		r.Delete("/api/autres/{id}", handlers.DeleteAutre)

		// Testimonials
		r.Get("/api/temoignages", handlers.ListTemoignages)
		r.Post("/api/temoignages", handlers.AddTemoignage)
		r.Get("/api/temoignages/{id}", handlers.GetTemoignage)
		r.Put("/api/temoignages/{id}", handlers.UpdateTemoignage)
		r.Delete("/api/temoignages/{id}", handlers.DeleteTemoignage)

		// Personal journal
		r.Get("/api/journal", handlers.ListJournal)
		r.Post("/api/journal", handlers.AddJournalEntry)
		r.Get("/api/journal/{id}", handlers.GetJournalEntry)
		r.Put("/api/journal/{id}", handlers.UpdateJournalEntry)
		r.Delete("/api/journal/{id}", handlers.DeleteJournalEntry)

		// Homepage and about page
		r.Get("/api/accueil/general", handlers.GetAccueilGeneral)
		r.Put("/api/accueil/general", handlers.UpdateAccueilGeneral)
		r.Get("/api/a-propos/general", handlers.GetAProposGeneral)
		r.Put("/api/a-propos/general", handlers.UpdateAProposGeneral)
		r.Get("/api/a-propos/outils", handlers.ListOutils)
		r.Post("/api/a-propos/outils", handlers.AddOutil)
		r.Get("/api/a-propos/outils/{id}", handlers.GetOutil)
		r.Put("/api/a-propos/outils/{id}", handlers.UpdateOutil)
		r.Delete("/api/a-propos/outils/{id}", handlers.DeleteOutil)

		// Media ledger
		r.Get("/api/media/failures", handlers.MediaFailures)
	})
}

// RouteList is printed at startup.
var RouteList = []string{
	"POST   /api/admin/signin",
	"GET    /ws/revalidations",
	"*      /api/photos[/batch|/{id}]",
	"*      /api/albums[/{id}|/{albumID}/photos/{id}]",
	"*      /api/tags/{kind}[/{id}]",
	"*      /api/videos[/{id}]",
	"*      /api/autres[/{id}]",
	"*      /api/temoignages[/{id}]",
	"*      /api/journal[/{id}]",
	"*      /api/accueil/general",
	"*      /api/a-propos/general",
	"*      /api/a-propos/outils[/{id}]",
	"GET    /api/media/failures",
}
