package server

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"github.com/xtding233/qrng-backend/internal/qerr"
	"github.com/xtding233/qrng-backend/internal/qrng"
	"github.com/xtding233/qrng-backend/internal/rng"
)

type bitsResp struct {
	Source    string               `json:"source"`
	Bits      string               `json:"bits"`
	Length    int                  `json:"length"`
	Frequency qrng.FrequencyResult `json:"frequency"`
}

type intResp struct {
	Value    int64  `json:"value"`
	Low      int64  `json:"low"`
	High     int64  `json:"high"`
	Bits     string `json:"bits,omitempty"`
	Unbiased bool   `json:"unbiased"`
}

type testReq struct {
	Bits      string  `json:"bits"`
	Threshold float64 `json:"threshold,omitempty"`
	Length    int     `json:"length,omitempty"`
	Level     float64 `json:"level,omitempty"`
}

type errResp struct {
	Err string `json:"err"`
}

func parseInt(r *http.Request, key string) (int64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, qerr.ErrInvalidParameter):
		status = http.StatusBadRequest
	case errors.Is(err, qerr.ErrBackendUnavailable):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	} else {
		s.log.Debug().Err(err).Msg("request rejected")
	}
	s.writeJSON(w, status, errResp{Err: err.Error()})
}

func (s *Server) extractor() qrng.Extractor {
	cfg := s.config()
	return qrng.Extractor{
		Backend: s.backend,
		Qubits:  cfg.QRNG.Qubits,
		Workers: cfg.QRNG.Workers,
	}
}

func (s *Server) testConfig() qrng.TestConfig {
	cfg := s.config()
	return qrng.TestConfig{
		Threshold:  cfg.QRNG.Threshold,
		Level:      cfg.QRNG.Level,
		MinPattern: cfg.QRNG.MinPattern,
		MaxPattern: cfg.QRNG.MaxPattern,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/bits?n=128&source=quantum|classical&seed=42
func (s *Server) handleBits(w http.ResponseWriter, r *http.Request) {
	n, ok, msg := parseInt(r, "n")
	if !ok {
		if msg == "" {
			msg = "missing param n"
		}
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}

	var (
		bits qrng.BitString
		err  error
	)
	switch r.URL.Query().Get("source") {
	case "", string(qrng.SourceQuantum):
		bits, err = s.extractor().Bits(r.Context(), int(n))
	case string(qrng.SourceClassical):
		var src rng.RandomSource
		if seed, has, bad := parseInt(r, "seed"); bad != "" {
			s.writeJSON(w, http.StatusBadRequest, errResp{Err: bad})
			return
		} else if has {
			src = rng.NewSeeded(uint64(seed))
		}
		bits, err = qrng.Classical(int(n), src)
	default:
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid source"})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	freq, err := qrng.Frequency(bits, s.config().QRNG.Threshold)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bitsResp{
		Source:    string(bits.Source()),
		Bits:      bits.String(),
		Length:    bits.Len(),
		Frequency: freq,
	})
}

// GET /api/int?low=1&high=6&bits=16&unbiased=true
func (s *Server) handleInt(w http.ResponseWriter, r *http.Request) {
	low, okL, msgL := parseInt(r, "low")
	high, okH, msgH := parseInt(r, "high")
	if !okL || !okH {
		msg := msgL
		if msg == "" {
			msg = msgH
		}
		if msg == "" {
			msg = "missing params low/high"
		}
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	if low > high {
		s.writeError(w, qerr.InvalidParam("map to range", "low", low))
		return
	}

	numBits := spanBits(low, high)
	if n, has, bad := parseInt(r, "bits"); bad != "" {
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: bad})
		return
	} else if has {
		numBits = int(n)
	}

	ex := s.extractor()
	unbiased := r.URL.Query().Get("unbiased") == "true"

	var (
		value int64
		bits  qrng.BitString
		err   error
	)
	if unbiased {
		value, err = qrng.MapToRangeUnbiased(low, high, func() (qrng.BitString, error) {
			return ex.Bits(r.Context(), numBits)
		})
	} else {
		bits, err = ex.Bits(r.Context(), numBits)
		if err == nil {
			value, err = qrng.MapToRange(bits, low, high)
		}
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, intResp{
		Value:    value,
		Low:      low,
		High:     high,
		Bits:     bits.String(),
		Unbiased: unbiased,
	})
}

// POST /api/test/frequency {"bits":"0101...","threshold":0.01}
func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	var req testReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid body"})
		return
	}
	bits, err := qrng.ParseBits(req.Bits, "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	threshold := req.Threshold
	if threshold == 0 {
		threshold = s.config().QRNG.Threshold
	}
	res, err := qrng.Frequency(bits, threshold)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// POST /api/test/pattern {"bits":"0101...","length":3,"level":0.05}
func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	var req testReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid body"})
		return
	}
	bits, err := qrng.ParseBits(req.Bits, "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	level := req.Level
	if level == 0 {
		level = s.config().QRNG.Level
	}
	res, err := qrng.Pattern(bits, req.Length, level)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// GET /api/compare?n=1024&seed=42
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	n, ok, msg := parseInt(r, "n")
	if !ok {
		if msg == "" {
			msg = "missing param n"
		}
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	var src rng.RandomSource
	if seed, has, bad := parseInt(r, "seed"); bad != "" {
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: bad})
		return
	} else if has {
		src = rng.NewSeeded(uint64(seed))
	}
	cmp, err := qrng.Compare(r.Context(), s.extractor(), src, int(n), s.testConfig())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cmp)
}

// GET /api/calibrate?qubits=4&state=0101&shots=256
func (s *Server) handleCalibrate(w http.ResponseWriter, r *http.Request) {
	qubits, ok, _ := parseInt(r, "qubits")
	if !ok {
		qubits = int64(s.config().QRNG.Qubits)
	}
	state := r.URL.Query().Get("state")
	if state == "" {
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: "missing param state"})
		return
	}
	shots, ok, _ := parseInt(r, "shots")
	if !ok {
		shots = 256
	}
	if err := qrng.VerifyCalibration(r.Context(), s.backend, int(qubits), state, int(shots)); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"state":  state,
		"shots":  shots,
	})
}

// GET /api/trials?trials=1000&n=16
func (s *Server) handleTrials(w http.ResponseWriter, r *http.Request) {
	trials, ok, msg := parseInt(r, "trials")
	if !ok {
		if msg == "" {
			msg = "missing param trials"
		}
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	n, ok, msg := parseInt(r, "n")
	if !ok {
		if msg == "" {
			msg = "missing param n"
		}
		s.writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	report, err := qrng.RunTrials(r.Context(), s.extractor(), int(trials), int(n))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// spanBits is the minimum bit count that can represent the inclusive
// range span.
func spanBits(low, high int64) int {
	span := new(big.Int).Sub(big.NewInt(high), big.NewInt(low))
	span.Add(span, big.NewInt(1))
	// BitLen of span-1 covers all values 0..span-1
	span.Sub(span, big.NewInt(1))
	if span.Sign() == 0 {
		return 1
	}
	return span.BitLen()
}
