package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pribylovaa/celebrations-service/internal/api"
	apierrors "github.com/pribylovaa/celebrations-service/internal/transport/http/errors"
)

// maxBodyBytes — предел тела запроса JSON API.
const maxBodyBytes = 1 << 20

// Handlers агрегирует зависимости JSON API.
type Handlers struct {
	API *api.API
}

func New(a *api.API) *Handlers {
	return &Handlers{API: a}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля и хвост после объекта.
// Пустое тело равносильно пустому объекту: обязательные поля проверит api.Validate.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierrors.InvalidBody("request body is too large")
		}

		return apierrors.InvalidBody("malformed JSON body: " + err.Error())
	}

	if dec.More() {
		return apierrors.InvalidBody("malformed JSON body: unexpected data after object")
	}

	return nil
}
