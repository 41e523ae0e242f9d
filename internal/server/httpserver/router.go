package httpserver

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/addrkeeper/internal/logging"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
	"github.com/dmitrijs2005/addrkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CustomerService is the part of services.CustomerService the handlers use.
type CustomerService interface {
	Signup(ctx context.Context, req services.SignupRequest) (*models.Customer, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, token string) (*models.CustomerAuth, error)
	UpdateProfile(ctx context.Context, token, firstName, lastName string) (*models.Customer, error)
	UpdatePassword(ctx context.Context, token, oldPassword, newPassword string) (*models.Customer, error)
}

// AddressService is the part of services.AddressService the handlers use.
type AddressService interface {
	Save(ctx context.Context, token string, req services.AddressRequest) (*models.Address, error)
	List(ctx context.Context, token string) ([]*models.Address, error)
	Delete(ctx context.Context, token, addressID string) (*models.Address, error)
	ListStates(ctx context.Context) ([]*models.State, error)
}

type Handler struct {
	customers CustomerService
	addresses AddressService
	logger    logging.Logger
}

func NewHandler(cs CustomerService, as AddressService, l logging.Logger) *Handler {
	return &Handler{customers: cs, addresses: as, logger: l.With("module", "http_handler")}
}

// NewRouter wires every route. gatherer may be nil, in which case /metrics
// is not mounted.
func NewRouter(h *Handler, gatherer prometheus.Gatherer, l logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(l.With("module", "http")))
	r.Use(middleware.Recoverer)

	r.Route("/customer", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Put("/", h.UpdateProfile)
		r.Put("/password", h.UpdatePassword)
	})

	r.Route("/address", func(r chi.Router) {
		r.Post("/", h.SaveAddress)
		r.Get("/customer", h.ListAddresses)
		r.Delete("/{address_id}", h.DeleteAddress)
		// an empty id reaches the service, which reports it as missing
		r.Delete("/", h.DeleteAddress)
	})

	r.Get("/states", h.ListStates)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
