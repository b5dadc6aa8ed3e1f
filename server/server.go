// Package server implements the HTTP surface of spec.md §6, generalizing
// the teacher's library shape into the reference's zkdoc_server: a health
// check plus three JSON endpoints over generate-commitment, generate-proof
// and verify-proof. The teacher (giuliop-AlgoPlonk) has no HTTP layer of its
// own, so this package's shape — route table, CORS, structured request
// logging — is grounded on the reference's actix-web main.rs instead,
// translated into net/http + zerolog, the ambient stack SPEC_FULL.md §1
// prescribes.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rowcommit/zkdoc/digest"
	"github.com/rowcommit/zkdoc/prover"
	"github.com/rowcommit/zkdoc/setup"
	"github.com/rowcommit/zkdoc/zkfield"
)

// RowCount is the row count /verify-proof compiles its circuit for,
// matching the reference server's ROW=10 constant. /generate-commitment and
// /generate-proof do not check it: they accept any row count of at least 2,
// and a proof generated for another row count does not verify here.
const RowCount = 10

// Server holds the shared, reusable compiled-circuit cache every handler
// draws from, and the logger every handler writes request lines to.
type Server struct {
	cache *prover.KeyCache
	log   zerolog.Logger
	mux   *http.ServeMux
}

// New builds a Server whose circuits are compiled with conf (setup.Trusted
// in production, setup.TestOnly in development/tests).
func New(conf setup.Conf, log zerolog.Logger) *Server {
	s := &Server{cache: prover.NewKeyCache(conf), log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("/", s.handleHealth)
	s.mux.HandleFunc("/generate-commitment", s.handleGenerateCommitment)
	s.mux.HandleFunc("/generate-proof", s.handleGenerateProof)
	s.mux.HandleFunc("/verify-proof", s.handleVerifyProof)
	return s
}

// ServeHTTP implements http.Handler, wrapping every request in the
// reference's two actix-web middlewares: permissive CORS and a structured
// access log line.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	applyCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rw, r)

	s.log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rw.status).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}

func applyCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleHealth is the reference's GET / health check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Rusty is fine!"))
}

// generateCommitmentAndProofRequest mirrors the reference's
// GenerateCommitmentAndProofRequest JSON shape field for field.
type generateCommitmentAndProofRequest struct {
	RowTitles    []string `json:"row_titles"`
	RowContents  []string `json:"row_contents"`
	RowSelectors []uint64 `json:"row_selectors"`
}

type generateCommitmentResponse struct {
	Commitment string `json:"commitment"`
}

type generateProofResponse struct {
	Proof prover.ProofBytes `json:"proof"`
}

type proofVerificationRequest struct {
	Proof      prover.ProofBytes `json:"proof"`
	RowTitle   string            `json:"row_title"`
	RowContent string            `json:"row_content"`
	Commitment string            `json:"commitment"`
}

type proofVerificationResponse struct {
	Valid bool `json:"valid"`
}

func (s *Server) handleGenerateCommitment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateCommitmentAndProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	doc, err := digest.CommitAndAccumulate(req.RowTitles, req.RowContents, req.RowSelectors)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, generateCommitmentResponse{Commitment: zkfield.Hex(doc.Commitment)})
}

func (s *Server) handleGenerateProof(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateCommitmentAndProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	cc, err := s.cache.Get(len(req.RowTitles))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// FYI this runs for tens of seconds, same caveat the reference's handler
	// comment carries.
	proofBytes, _, err := cc.Prove(req.RowTitles, req.RowContents, req.RowSelectors)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, generateProofResponse{Proof: prover.ProofBytes(proofBytes)})
}

func (s *Server) handleVerifyProof(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req proofVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	cc, err := s.cache.Get(RowCount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	valid, err := cc.Verify([]byte(req.Proof), req.Commitment, req.RowTitle, req.RowContent)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, proofVerificationResponse{Valid: valid})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
