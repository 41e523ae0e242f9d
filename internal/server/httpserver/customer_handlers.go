package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/server/services"
	"github.com/dmitrijs2005/addrkeeper/internal/shared"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req shared.SignupCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.customers.Signup(r.Context(), services.SignupRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.EmailAddress,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, shared.StatusResponse{ID: c.UUID, Status: shared.StatusCustomerRegistered})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email, password, err := basicCredentials(r.Header.Get(common.AuthorizationHeaderName))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.customers.Login(r.Context(), email, password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	c := res.Customer
	w.Header().Set(common.AccessTokenHeaderName, res.Session.AccessToken)
	w.Header().Set("Access-Control-Expose-Headers", common.AccessTokenHeaderName)
	writeJSON(w, http.StatusOK, shared.LoginResponse{
		ID:            c.UUID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		EmailAddress:  c.Email,
		ContactNumber: c.ContactNumber,
		Message:       shared.StatusLoggedIn,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.customers.Logout(r.Context(), bearerToken(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shared.LogoutResponse{ID: session.CustomerUUID, Message: shared.StatusLoggedOut})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req shared.UpdateCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.customers.UpdateProfile(r.Context(), bearerToken(r), req.FirstName, req.LastName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shared.UpdateCustomerResponse{
		ID:        c.UUID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Status:    shared.StatusCustomerUpdated,
	})
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req shared.UpdatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.customers.UpdatePassword(r.Context(), bearerToken(r), req.OldPassword, req.NewPassword)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shared.StatusResponse{ID: c.UUID, Status: shared.StatusPasswordUpdated})
}
