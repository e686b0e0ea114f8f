package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/qrng-backend/internal/config"
	"github.com/xtding233/qrng-backend/internal/qrng"
	"github.com/xtding233/qrng-backend/internal/rng"
	"github.com/xtding233/qrng-backend/internal/sim"
)

func newTestServer(backend sim.Backend) *Server {
	return New(config.Default(), zerolog.Nop(), backend)
}

func doJSON(t *testing.T, h http.Handler, method, target, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()
	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBitsQuantum(t *testing.T) {
	backend := sim.NewScripted(sim.Shot("1010"), sim.Shot("0101"))
	h := newTestServer(backend).Router()

	var resp bitsResp
	rec := doJSON(t, h, http.MethodGet, "/api/bits?n=8", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "quantum", resp.Source)
	assert.Equal(t, "10100101", resp.Bits)
	assert.Equal(t, 8, resp.Length)
	assert.Equal(t, 8, resp.Frequency.SampleSize)
}

func TestBitsClassicalSeeded(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()

	var first, second bitsResp
	rec := doJSON(t, h, http.MethodGet, "/api/bits?n=64&source=classical&seed=42", "", &first)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/bits?n=64&source=classical&seed=42", "", &second)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "classical", first.Source)
	assert.Equal(t, first.Bits, second.Bits)
}

func TestBitsMissingN(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()
	rec := doJSON(t, h, http.MethodGet, "/api/bits", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBitsInvalidN(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()
	rec := doJSON(t, h, http.MethodGet, "/api/bits?n=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBitsBackendFailure(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router() // empty script
	rec := doJSON(t, h, http.MethodGet, "/api/bits?n=8", "", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestIntModulo(t *testing.T) {
	// 1010 = 10, span 7 => 0 + 10 mod 7 = 3
	backend := sim.NewScripted(sim.Shot("1010"))
	h := newTestServer(backend).Router()

	var resp intResp
	rec := doJSON(t, h, http.MethodGet, "/api/int?low=0&high=6&bits=4", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), resp.Value)
	assert.False(t, resp.Unbiased)
}

func TestIntDefaultsBitWidth(t *testing.T) {
	// span 2 needs a single bit; one 4-qubit chunk covers it
	backend := sim.NewScripted(sim.Shot("0110"))
	h := newTestServer(backend).Router()

	var resp intResp
	rec := doJSON(t, h, http.MethodGet, "/api/int?low=0&high=1", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, []int64{0, 1}, resp.Value)
}

func TestIntInvalidBounds(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()
	rec := doJSON(t, h, http.MethodGet, "/api/int?low=5&high=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntUnbiased(t *testing.T) {
	backend := sim.NewStatevector(rng.NewSeeded(3))
	h := newTestServer(backend).Router()

	var resp intResp
	rec := doJSON(t, h, http.MethodGet, "/api/int?low=1&high=6&unbiased=true", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Unbiased)
	assert.GreaterOrEqual(t, resp.Value, int64(1))
	assert.LessOrEqual(t, resp.Value, int64(6))
}

func TestFrequencyEndpoint(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()

	var resp qrng.FrequencyResult
	body := `{"bits":"0111010110010011"}`
	rec := doJSON(t, h, http.MethodPost, "/api/test/frequency", body, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0.5, resp.Statistic, 1e-12)
	assert.InDelta(t, 0.6171, resp.PValue, 1e-3)
	assert.True(t, resp.Pass)
}

func TestFrequencyEndpointBadBits(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()
	rec := doJSON(t, h, http.MethodPost, "/api/test/frequency", `{"bits":"01x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatternEndpoint(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()

	var resp qrng.PatternResult
	body := `{"bits":"000001010011100101110111","length":3}`
	rec := doJSON(t, h, http.MethodPost, "/api/test/pattern", body, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, resp.Length)
	assert.Equal(t, 8, resp.Blocks)
	assert.Zero(t, resp.ChiSquare)
	assert.False(t, resp.NonRandom)
}

func TestCompareEndpoint(t *testing.T) {
	backend := sim.NewStatevector(rng.NewSeeded(17))
	h := newTestServer(backend).Router()

	var resp qrng.Comparison
	rec := doJSON(t, h, http.MethodGet, "/api/compare?n=240&seed=4", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 240, resp.Quantum.Bits)
	assert.Equal(t, 240, resp.Classical.Bits)
	assert.Len(t, resp.Quantum.Patterns, 5)
}

func TestCalibrateEndpoint(t *testing.T) {
	backend := sim.NewStatevector(rng.NewSeeded(5))
	h := newTestServer(backend).Router()

	rec := doJSON(t, h, http.MethodGet, "/api/calibrate?state=0101&shots=100", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCalibrateEndpointMissingState(t *testing.T) {
	h := newTestServer(sim.NewScripted()).Router()
	rec := doJSON(t, h, http.MethodGet, "/api/calibrate", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrialsEndpoint(t *testing.T) {
	backend := sim.NewStatevector(rng.NewSeeded(6))
	h := newTestServer(backend).Router()

	var resp qrng.TrialReport
	rec := doJSON(t, h, http.MethodGet, "/api/trials?trials=50&n=16", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, resp.Trials)
	assert.Equal(t, 16, resp.BitsPerTrial)
}

func TestSetConfigHotReload(t *testing.T) {
	backend := sim.NewStatevector(rng.NewSeeded(8))
	s := newTestServer(backend)
	h := s.Router()

	next := config.Default()
	next.QRNG.Qubits = 8
	s.SetConfig(next)

	var resp bitsResp
	rec := doJSON(t, h, http.MethodGet, "/api/bits?n=8", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8, resp.Length)
}
