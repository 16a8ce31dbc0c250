// errors стандартизирует ответы об ошибках HTTP-слоя celebrations-service.
// На вход принимает ошибку ядра (или api.Validate), на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный машиночитаемый code;
//   - message: пояснение для клиентских ошибок, нейтральный текст для внутренних.
//
// Источник истинности по маппингу ошибок — api.ToStatus (gRPC codes).
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/celebrations-service/internal/api"
	"github.com/pribylovaa/celebrations-service/internal/service"
	"google.golang.org/grpc/codes"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// InvalidBody — ошибка разбора тела запроса.
func InvalidBody(detail string) error {
	return &service.DetailError{Kind: service.ErrInvalidArgument, Detail: detail}
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal, чтобы не послать "200 OK" с телом ошибки;
//   - иначе — api.ToStatus, затем таблица baseFromGRPC.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{Code: "internal", Message: "internal error"},
		}
	}

	st := api.ToStatus(err)
	httpStatus, code, fallback := baseFromGRPC(st.Code())

	msg := st.Message()
	if msg == "" || httpStatus == http.StatusInternalServerError {
		msg = fallback
	}

	return httpStatus, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromGRPC — базовый маппинг gRPC -> HTTP/код/сообщение по умолчанию:
//   - InvalidArgument -> 400
//   - NotFound -> 404
//   - PermissionDenied -> 403 (вызывающий неизвестен, приём комментариев закрыт)
//   - Aborted -> 409 (повторы CAS исчерпаны)
//   - Canceled -> 499
//   - DeadlineExceeded -> 504
//   - Unavailable -> 503
//   - прочее -> 500/internal
func baseFromGRPC(c codes.Code) (int, string, string) {
	switch c {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case codes.NotFound:
		return http.StatusNotFound, "not_found", "not found"
	case codes.PermissionDenied:
		return http.StatusForbidden, "permission_denied", "permission denied"
	case codes.Aborted:
		return http.StatusConflict, "conflict", "conflict"
	case codes.Canceled:
		return StatusClientClosedRequest, "canceled", "canceled"
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case codes.Unavailable:
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
