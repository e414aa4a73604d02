package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"rubconv/internal/conversion"

	"github.com/sirupsen/logrus"
)

// Head answers with the JSON content type and no body.
func (h *Handler) Head(w http.ResponseWriter, r *http.Request) {
	h.requestLog(r).Info("HEAD request")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

// Get always reports that conversions must be POSTed.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, conversion.CodeMethodNotAllowed)
}

// Convert handles POST {"usd": <number>} and replies with the RUB equivalent.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		h.writeError(w, r, conversion.CodeIncorrectContentType)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, r, conversion.CodeMalformedJSON)
		return
	}

	req, err := conversion.ParseRequest(body)
	if err != nil {
		h.writeError(w, r, conversion.CodeFor(err))
		return
	}

	res, err := h.converter.Convert(r.Context(), req.USD)
	if err != nil {
		h.writeError(w, r, conversion.CodeFor(err))
		return
	}

	if err = h.writeJSON(w, r, http.StatusOK, response{Success: true, Data: &res}); err != nil {
		return
	}
	h.requestLog(r).WithFields(logrus.Fields{
		"usd":  res.RequestedValue,
		"rub":  res.ResultValue,
		"rate": res.ExchangeRate,
	}).Info("Conversion succeeded")
}

func isJSONContentType(header string) bool {
	if header == "" {
		return false
	}
	// A broken parameter still leaves a usable media type.
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil && !errors.Is(err, mime.ErrInvalidMediaParameter) {
		return false
	}
	return mediaType == "application/json"
}
