package handlers

import (
	"context"
	"net/http"

	"github.com/pribylovaa/celebrations-service/internal/api"
	"github.com/pribylovaa/celebrations-service/internal/models"
	apierrors "github.com/pribylovaa/celebrations-service/internal/transport/http/errors"
)

// serve — общий путь JSON-ручки: строгий разбор тела, вызов API от имени
// вызывающего из контекста (middleware.Caller), ответ или унифицированная ошибка.
func serve[In, Out any](w http.ResponseWriter, r *http.Request, status int, call func(context.Context, models.Caller, In) (*Out, error)) {
	var in In
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := call(r.Context(), api.CallerFrom(r.Context()), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, status, out)
}

// Search — POST /search.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, h.API.Search)
}

// Contributions — POST /celebration_contributions.
func (h *Handlers) Contributions(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, h.API.Contributions)
}

// Comment — POST /comment.
func (h *Handlers) Comment(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusCreated, h.API.Comment)
}

// Invite — POST /invite.
func (h *Handlers) Invite(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, h.API.Invite)
}

// FindInvitees — POST /find_invitees.
func (h *Handlers) FindInvitees(w http.ResponseWriter, r *http.Request) {
	serve(w, r, http.StatusOK, h.API.FindInvitees)
}
