package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
	"github.com/dmitrijs2005/addrkeeper/internal/server/services"
	"github.com/dmitrijs2005/addrkeeper/internal/shared"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	var req shared.SaveAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.addresses.Save(r.Context(), bearerToken(r), services.AddressRequest{
		FlatBuildingName: req.FlatBuildingName,
		Locality:         req.Locality,
		City:             req.City,
		Pincode:          req.Pincode,
		StateID:          req.StateUUID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, shared.StatusResponse{ID: a.UUID, Status: shared.StatusAddressRegistered})
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	list, err := h.addresses.List(r.Context(), bearerToken(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := shared.AddressListResponse{Addresses: make([]shared.Address, 0, len(list))}
	for _, a := range list {
		out.Addresses = append(out.Addresses, toAddress(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	a, err := h.addresses.Delete(r.Context(), bearerToken(r), chi.URLParam(r, "address_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, shared.StatusResponse{ID: a.UUID, Status: shared.StatusAddressDeleted})
}

func (h *Handler) ListStates(w http.ResponseWriter, r *http.Request) {
	list, err := h.addresses.ListStates(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := shared.StatesListResponse{States: make([]shared.State, 0, len(list))}
	for _, s := range list {
		out.States = append(out.States, toState(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func toState(s *models.State) shared.State {
	return shared.State{ID: s.UUID, StateName: s.Name}
}

func toAddress(a *models.Address) shared.Address {
	return shared.Address{
		ID:               a.UUID,
		FlatBuildingName: a.FlatBuildingName,
		Locality:         a.Locality,
		City:             a.City,
		Pincode:          a.Pincode,
		State:            toState(&a.State),
	}
}
