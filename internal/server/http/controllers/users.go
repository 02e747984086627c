package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rzbill/flake/internal/services/registration"
	"github.com/rzbill/flake/pkg/id"
)

// UsersController exposes registration over JSON.
type UsersController struct {
	reg *registration.Service
}

// NewUsersController creates a new users controller.
func NewUsersController(reg *registration.Service) *UsersController {
	return &UsersController{reg: reg}
}

// RegisterRoutes registers the /v1/users routes.
func (c *UsersController) RegisterRoutes(r chi.Router) {
	r.Post("/v1/users/register", c.handleRegister)
	r.Post("/v1/users/authenticate", c.handleAuthenticate)
	r.Get("/v1/users/{id}", c.handleGet)
}

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
	Age      int32  `json:"age"`
	Address  string `json:"address"`
}

type registerResp struct {
	UserID  id.ID  `json:"userId"`
	Message string `json:"message"`
}

type authenticateReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister returns 201 with the new user ID, 409 when the username is
// taken.
func (c *UsersController) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	resp, err := c.reg.Register(r.Context(), registration.Request(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, registerResp{UserID: resp.UserID, Message: resp.Message})
}

func (c *UsersController) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	userID, err := c.reg.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]id.ID{"userId": userID})
}

func (c *UsersController) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	prof, err := c.reg.Lookup(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, prof)
}
