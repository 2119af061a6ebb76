package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"smartone-ap/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
// allowedOrigins is a comma-separated origin list; empty disables CORS.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	if origins := splitAndTrim(allowedOrigins); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Get("/api/health", h.health)

	// Accounts payable
	r.Get("/api/finance/payable", h.getPayable)
	r.Post("/api/finance/payable", h.createBill)
	r.Put("/api/finance/payable", h.payBill)

	// Master data
	r.Get("/api/finance/vendors", h.listVendors)
	r.Post("/api/finance/vendors", h.createVendor)
	r.Get("/api/finance/vendors/{id}", h.getVendor)
	r.Get("/api/finance/accounts", h.listAccounts)
	r.Post("/api/finance/accounts", h.createAccount)
	r.Get("/api/finance/periods", h.listPeriods)
	r.Post("/api/finance/periods", h.createPeriod)
	r.Post("/api/finance/periods/{id}/close", h.closePeriod)

	// Ledger read side
	r.Get("/api/finance/journal-entries", h.listJournalEntries)
	r.Get("/api/finance/transactions", h.listTransactions)

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
