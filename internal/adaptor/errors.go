package adaptor

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"hostal-booking/internal/usecase"
	"hostal-booking/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps a service error kind onto an HTTP status.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	e, ok := usecase.AsError(err)
	if !ok {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch e.Kind {
	case usecase.KindValidation:
		log.Warn(operation+" validation failed", zap.Error(err))
		var details any = map[string]string{"reason": e.Reason}
		if len(e.Fields) > 0 {
			details = e.Fields
		}
		utils.ResponseBadRequest(w, e.Message, details)

	case usecase.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err), zap.String("reason", e.Reason))
		utils.ResponseConflict(w, e.Message, map[string]string{"reason": e.Reason})

	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, e.Message)

	case usecase.KindUnauthorized:
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, e.Message)

	case usecase.KindForbidden:
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, e.Message)

	case usecase.KindDependency:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseUnavailable(w, "Service temporarily unavailable, retry later")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func clientInfo(r *http.Request) usecase.ClientInfo {
	ip := r.RemoteAddr
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return usecase.ClientInfo{UserAgent: r.UserAgent(), IPAddress: ip}
}

func paginationFromQuery(r *http.Request) (page, perPage int) {
	query := r.URL.Query()
	return utils.ParseInt(query.Get("page"), 1), utils.ParseInt(query.Get("per_page"), 10)
}
