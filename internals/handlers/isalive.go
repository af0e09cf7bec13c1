package handlers

import (
	"net/http"
)

// IsAlive godoc
// @Summary Check if the API is alive
// @Description allows to check if the API is alive
// @Tags System
// @Success 200 "Status OK"
// @Router /isalive [get]
func IsAlive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"alive": true}`))
}
