package server

import (
	"errors"
	"net/http"
	"strings"
)

func handleGetData(svc *DataService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := svc.Fetch(r.Context())
		if err != nil {
			noStore(w)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		noStore(w)
		writeJSON(w, http.StatusOK, doc)
	}
}

func handlePostData(svc *DataService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credential := bearerToken(r)

		var doc map[string]any
		if err := readJSON(r, &doc); err != nil {
			noStore(w)
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		_, err := svc.Save(r.Context(), doc, credential)
		if errors.Is(err, ErrUnauthorized) {
			noStore(w)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if err != nil {
			noStore(w)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		noStore(w)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return auth[len(prefix):]
}
