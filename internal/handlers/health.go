package handlers

import (
	"net/http"

	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
)

func Health(logger *utils.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, logger, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
