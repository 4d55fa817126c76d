package controllers

import (
	"errors"
	"net/http"

	"hyperstat/internal/clients"
	"hyperstat/internal/codec"

	json "github.com/goccy/go-json"
)

const problemContentType = "application/problem+json"

// problemDetail is an RFC 9457 error body.
type problemDetail struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Status         int    `json:"status"`
	Detail         string `json:"detail,omitempty"`
	Instance       string `json:"instance,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamError  string `json:"upstream_error,omitempty"`
}

func problemFromError(err error) problemDetail {
	var (
		se *clients.StatusError
		de *codec.DecodeError
		te *clients.TransportError
	)

	switch {
	case errors.Is(err, clients.ErrMissingParameter):
		return problemDetail{
			Type:   "urn:hyperstat:problem:missing-parameter",
			Title:  "Missing parameter",
			Status: http.StatusBadRequest,
			Detail: err.Error(),
		}
	case errors.As(err, &se):
		status := se.StatusCode
		if status >= 500 || status < 400 {
			status = http.StatusBadGateway
		}
		return problemDetail{
			Type:           "urn:hyperstat:problem:upstream-status",
			Title:          "Upstream rejected the request",
			Status:         status,
			Detail:         se.UpstreamMessage,
			UpstreamStatus: se.StatusCode,
			UpstreamError:  se.UpstreamName,
		}
	case errors.As(err, &de):
		return problemDetail{
			Type:   "urn:hyperstat:problem:upstream-decode",
			Title:  "Malformed upstream response",
			Status: http.StatusBadGateway,
			Detail: de.Error(),
		}
	case errors.As(err, &te):
		status := http.StatusBadGateway
		if te.Timeout() {
			status = http.StatusGatewayTimeout
		}
		return problemDetail{
			Type:   "urn:hyperstat:problem:upstream-unreachable",
			Title:  "Upstream unreachable",
			Status: status,
		}
	default:
		return problemDetail{
			Type:   "about:blank",
			Title:  http.StatusText(http.StatusInternalServerError),
			Status: http.StatusInternalServerError,
		}
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, err error) {
	p := problemFromError(err)
	p.Instance = r.URL.Path

	body, mErr := json.Marshal(p)
	if mErr != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(p.Status)
	_, _ = w.Write(body)
}
