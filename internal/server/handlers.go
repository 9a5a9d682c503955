package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/qkdlab/qkdsim/qkd"
)

//go:embed templates
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// simulateRequest is the JSON body accepted by POST /api/simulate.
type simulateRequest struct {
	Protocol string `json:"protocol"`
	Qubits   int    `json:"qubits"`
	Seed     int64  `json:"seed"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ MaxQubits int }{MaxQubits: s.maxQubits}
	if err := indexTmpl.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("Failed to render index template")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "qkdsim",
	})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	protocol, err := qkd.ParseProtocol(req.Protocol)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Qubits < 1 {
		s.writeError(w, http.StatusBadRequest, "qubits must be at least 1")
		return
	}
	if req.Qubits > s.maxQubits {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("qubits must be at most %d", s.maxQubits))
		return
	}

	res, err := qkd.Run(qkd.Options{
		Protocol: protocol,
		Qubits:   req.Qubits,
		Seed:     req.Seed,
	})
	if err != nil {
		// Validation happened above; anything left is unexpected.
		if errors.Is(err, qkd.ErrQubitCount) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error().Err(err).Msg("Simulation failed")
		s.writeError(w, http.StatusInternalServerError, "simulation failed")
		return
	}
	observeSimulation(res.Protocol.String(), res.Metrics.Secure, res.Metrics.Elapsed.Seconds())

	s.log.Debug().
		Stringer("protocol", res.Protocol).
		Int("qubits", req.Qubits).
		Int64("seed", req.Seed).
		Int("key_length", res.Metrics.KeyLength).
		Float64("error_rate", res.Metrics.ErrorRate).
		Bool("secure", res.Metrics.Secure).
		Msg("Simulation complete")

	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
