package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.loginHandler(w, r)
}
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.registerHandler(w, r)
}
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.logoutHandler(w, r)
}
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.updateProfileHandler(w, r)
}
