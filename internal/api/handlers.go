package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ignite/newsletter/internal/auth"
	"github.com/ignite/newsletter/internal/metrics"
	"github.com/ignite/newsletter/internal/service/delivery"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// basicChallenge is sent with every 401 on the delivery endpoint so Basic
// clients know to retry with credentials.
const basicChallenge = `Basic realm="delivery"`

// SubscriptionService is the subscriber lifecycle contract the handlers call.
type SubscriptionService interface {
	Subscribe(ctx context.Context, name, email string) error
	Confirm(ctx context.Context, token string) error
}

// DeliveryService broadcasts one issue to all confirmed subscribers.
type DeliveryService interface {
	Deliver(ctx context.Context, authHeader string, issue delivery.Issue) error
}

// LoginVerifier checks a username/password pair for the login form.
type LoginVerifier interface {
	Verify(ctx context.Context, creds auth.Credentials) (uuid.UUID, error)
}

// Handlers holds the HTTP handlers and their service dependencies.
type Handlers struct {
	subscriptions SubscriptionService
	deliveries    DeliveryService
	logins        LoginVerifier
	collector     *metrics.Collector
}

// NewHandlers creates the handler set. collector may be nil in tests.
func NewHandlers(subs SubscriptionService, dels DeliveryService, logins LoginVerifier, collector *metrics.Collector) *Handlers {
	return &Handlers{subscriptions: subs, deliveries: dels, logins: logins, collector: collector}
}

// Subscribe handles POST /subscribe: form fields name and email.
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed form data")
		return
	}

	err := h.subscriptions.Subscribe(r.Context(), r.PostFormValue("name"), r.PostFormValue("email"))
	switch {
	case err == nil:
		if h.collector != nil {
			h.collector.RecordSubscription()
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "pending_confirmation"})
	case errors.Is(err, subscription.ErrInvalidSubscriber):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, subscription.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "email is already subscribed")
	default:
		respondSafeError(w, http.StatusInternalServerError, err, "subscription could not be completed")
	}
}

// Confirm handles GET /subscriptions/confirm?subscription_token=...
func (h *Handlers) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("subscription_token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "missing subscription_token")
		return
	}

	err := h.subscriptions.Confirm(r.Context(), token)
	switch {
	case err == nil:
		if h.collector != nil {
			h.collector.RecordConfirmation()
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
	case errors.Is(err, subscription.ErrUnknownToken):
		// No challenge header: this is a link, not a credentialed client.
		respondError(w, http.StatusUnauthorized, "unknown subscription token")
	default:
		respondSafeError(w, http.StatusInternalServerError, err, "confirmation could not be completed")
	}
}

type deliverRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// Deliver handles POST /delivery: Basic-Auth gated newsletter broadcast.
func (h *Handlers) Deliver(w http.ResponseWriter, r *http.Request) {
	var req deliverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	err := h.deliveries.Deliver(r.Context(), r.Header.Get("Authorization"), delivery.Issue{
		Subject: req.Subject,
		Content: req.Content,
	})
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]string{"status": "delivered"})
	case isAuthFailure(err):
		// Every auth failure mode collapses to the same response shape.
		w.Header().Set("WWW-Authenticate", basicChallenge)
		respondError(w, http.StatusUnauthorized, "authentication required")
	default:
		respondSafeError(w, http.StatusInternalServerError, err, "delivery could not be completed")
	}
}

func isAuthFailure(err error) bool {
	return errors.Is(err, auth.ErrMissingCredentials) ||
		errors.Is(err, auth.ErrMalformedCredentials) ||
		errors.Is(err, auth.ErrInvalidCredentials)
}

// HealthCheck handles GET /health-check.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Index handles GET /: the public subscribe form.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

// LoginPage handles GET /login.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(loginHTML))
}

// Login handles POST /login. Both outcomes redirect to / so the form never
// reveals whether a username exists.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "malformed form data")
		return
	}

	creds := auth.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if _, err := h.logins.Verify(r.Context(), creds); err != nil && !isAuthFailure(err) {
		respondSafeError(w, http.StatusInternalServerError, err, "login could not be completed")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Newsletter</title></head>
<body>
  <h1>Subscribe to our newsletter</h1>
  <form action="/subscribe" method="post">
    <label>Name <input type="text" name="name" placeholder="Your name"></label>
    <label>Email <input type="email" name="email" placeholder="you@example.com"></label>
    <button type="submit">Subscribe</button>
  </form>
</body>
</html>
`

const loginHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Login</title></head>
<body>
  <form action="/login" method="post">
    <label>Username <input type="text" name="username"></label>
    <label>Password <input type="password" name="password"></label>
    <button type="submit">Login</button>
  </form>
</body>
</html>
`
