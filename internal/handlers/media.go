package handlers

import (
	"net/http"
	"strconv"
)

const defaultFailureLimit = 50

// MediaFailures handles GET /api/media/failures?limit=N and lists the
// latest media operations that failed.
func MediaFailures(w http.ResponseWriter, r *http.Request) {
	limit := defaultFailureLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			writeFail(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	events, err := mediaLedger.RecentFailures(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, events)
}
