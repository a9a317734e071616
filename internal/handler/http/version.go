package http

import (
	"net/http"
)

type versionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	h.respondData(w, r, http.StatusOK, envelope{"version": versionResponse{
		Version: h.build.BuildVersion(),
		Date:    h.build.BuildDate(),
		Commit:  h.build.BuildCommit(),
	}})
}
