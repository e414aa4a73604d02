package handler

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"rubconv/internal/conversion"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds the POST body; a {"usd": ...} payload is far smaller.
const maxBodyBytes = 64 << 10

type Converter interface {
	Convert(ctx context.Context, usd float64) (conversion.Result, error)
}

type Handler struct {
	converter    Converter
	log          logrus.FieldLogger
	strictStatus bool
}

// NewConverterHandler builds the handler. With strictStatus the catalog status of an
// error is sent as the transport status; otherwise every response is 200.
func NewConverterHandler(converter Converter, log logrus.FieldLogger, strictStatus bool) *Handler {
	return &Handler{converter: converter, log: log, strictStatus: strictStatus}
}

type response struct {
	Success bool                   `json:"success"`
	Data    *conversion.Result     `json:"data,omitempty"`
	Error   *conversion.ErrorEntry `json:"error,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, code conversion.Code) {
	entry, _ := conversion.Lookup(code)

	statusCode := http.StatusOK
	if h.strictStatus && entry.Status != 0 {
		statusCode = entry.Status
	}

	h.requestLog(r).WithField("code", entry.Code).Info(entry.Message)
	_ = h.writeJSON(w, r, statusCode, response{Success: false, Error: &entry})
}

func (h *Handler) requestLog(r *http.Request) logrus.FieldLogger {
	return h.log.WithFields(logrus.Fields{
		"client":     clientAddr(r),
		"request_id": middleware.GetReqID(r.Context()),
	})
}

// writeJSON encodes body before any header is sent; encoding failures answer 500.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, body response) error {
	payload, err := json.Marshal(body)
	if err != nil {
		h.requestLog(r).WithError(err).Error("Failed to encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(payload, '\n'))
	return nil
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
