package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mseongj/seoul-transit-proxy/models"
)

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Hello World"})
}

func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: fmt.Sprintf("Hello %s", name)})
}
