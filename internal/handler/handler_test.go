package handler_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/tractscore/internal/database"
	"github.com/mtlprog/tractscore/internal/domain"
	"github.com/mtlprog/tractscore/internal/handler"
	"github.com/mtlprog/tractscore/internal/handler/dto"
)

const (
	geoidA     = "06075000100"
	geoidB     = "06075000200"
	adminToken = "test-admin-token"
)

type HandlerTestSuite struct {
	suite.Suite

	handler    *handler.Handler
	mux        *http.ServeMux
	scoresPath string
}

func (s *HandlerTestSuite) SetupTest() {
	dir := s.T().TempDir()
	tractsDB := filepath.Join(dir, "tracts.db")
	s.scoresPath = filepath.Join(dir, "tract_lookup.json")

	db, err := database.New(tractsDB)
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })

	s.Require().NoError(database.RunMigrations(db))

	s.handler = handler.New(db, tractsDB, s.scoresPath, adminToken)
	s.mux = http.NewServeMux()
	s.handler.RegisterRoutes(s.mux)
}

// seed ingests two unit-square tracts and a score for the first one.
func (s *HandlerTestSuite) seed() {
	s.Require().NoError(os.WriteFile(s.scoresPath, []byte(fmt.Sprintf(`{%q: 42.5}`, geoidA)), 0o644))

	feed := s.ndjsonLine(geoidA, 0, 0, 1, 1) + "\n" + s.ndjsonLine(geoidB, 2, 0, 3, 1)
	_, _, err := s.handler.Service().Ingest(context.Background(), strings.NewReader(feed), domain.LoadSourceIngest)
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) ndjsonLine(geoid string, minLon, minLat, maxLon, maxLat float64) string {
	poly := orb.Polygon{orb.Ring{
		{minLon, minLat},
		{maxLon, minLat},
		{maxLon, maxLat},
		{minLon, maxLat},
		{minLon, minLat},
	}}
	data, err := wkb.Marshal(poly)
	s.Require().NoError(err)
	return fmt.Sprintf(`{"geoid": %q, "wkb": %q}`, geoid, hex.EncodeToString(data))
}

// doRequest executes a request against the mux and returns the recorder.
func (s *HandlerTestSuite) doRequest(method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *HandlerTestSuite) TestHealthz() {
	rec := s.doRequest(http.MethodGet, "/healthz", nil, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestIndexPage() {
	rec := s.doRequest(http.MethodGet, "/", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/html")
	s.Contains(rec.Body.String(), "Tract Score API")
}

func (s *HandlerTestSuite) TestReadyzBeforeAndAfterLoad() {
	rec := s.doRequest(http.MethodGet, "/readyz", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var ready dto.ReadyResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &ready))
	s.False(ready.Ready)
	s.Equal(s.scoresPath, ready.ScoresPath)

	s.seed()

	rec = s.doRequest(http.MethodGet, "/readyz", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &ready))
	s.True(ready.Ready)
	s.Equal(2, ready.TractCount)
	s.Equal(1, ready.ScoreCount)
}

func (s *HandlerTestSuite) TestScore() {
	s.seed()

	rec := s.doRequest(http.MethodGet, "/api/v1/score?lat=0.5&lon=0.5", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.ScoreResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(geoidA, resp.GEOID)
	s.Require().NotNil(resp.Score)
	s.Equal(42.5, *resp.Score)
}

func (s *HandlerTestSuite) TestScoreUnscoredTractIsNull() {
	s.seed()

	rec := s.doRequest(http.MethodGet, "/api/v1/score?lat=0.5&lon=2.5", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"score":null`)
}

func (s *HandlerTestSuite) TestScoreNotInTract() {
	s.seed()

	rec := s.doRequest(http.MethodGet, "/api/v1/score?lat=0.5&lon=1.5", nil, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Equal("NOT_IN_TRACT", s.decodeError(rec).Error.Code)
}

func (s *HandlerTestSuite) TestScoreMissingParams() {
	s.seed()

	rec := s.doRequest(http.MethodGet, "/api/v1/score?lat=0.5", nil, "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Equal("INVALID_REQUEST", s.decodeError(rec).Error.Code)

	rec = s.doRequest(http.MethodGet, "/api/v1/score?lat=abc&lon=0.5", nil, "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestScoreInvalidCoordinates() {
	s.seed()

	rec := s.doRequest(http.MethodGet, "/api/v1/score?lat=95&lon=0.5", nil, "")
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("VALIDATION_ERROR", s.decodeError(rec).Error.Code)
}

func (s *HandlerTestSuite) TestScoreNotReady() {
	rec := s.doRequest(http.MethodGet, "/api/v1/score?lat=0.5&lon=0.5", nil, "")
	s.Require().Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("INDEX_NOT_READY", s.decodeError(rec).Error.Code)
}

func (s *HandlerTestSuite) TestScoreBulk() {
	s.seed()

	body, err := json.Marshal(dto.BulkScoreRequest{Points: [][]float64{
		{0.5, 0.5},
		{0.5, 1.5},
		{95, 0},
	}})
	s.Require().NoError(err)

	rec := s.doRequest(http.MethodPost, "/api/v1/score/bulk", bytes.NewReader(body), "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var items []dto.BulkItemResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	s.Require().Len(items, 3)

	s.True(items[0].OK)
	s.Equal(geoidA, items[0].GEOID)

	s.False(items[1].OK)
	s.Equal("not_in_tract", items[1].Error)

	s.False(items[2].OK)
	s.Contains(items[2].Error, "lat")
}

func (s *HandlerTestSuite) TestScoreBulkInvalidJSON() {
	s.seed()

	rec := s.doRequest(http.MethodPost, "/api/v1/score/bulk", strings.NewReader("{not json"), "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Equal("INVALID_JSON", s.decodeError(rec).Error.Code)
}

func (s *HandlerTestSuite) TestGetTract() {
	s.seed()

	rec := s.doRequest(http.MethodGet, "/api/v1/tracts/"+geoidA, nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.TractResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(geoidA, resp.GEOID)
	s.Equal([]float64{0, 0, 1, 1}, resp.BBox)
	s.True(resp.HasScore)

	rec = s.doRequest(http.MethodGet, "/api/v1/tracts/99999999999", nil, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Equal("TRACT_NOT_FOUND", s.decodeError(rec).Error.Code)
}

func (s *HandlerTestSuite) TestGetStats() {
	s.seed()

	rec := s.doRequest(http.MethodGet, "/api/v1/stats", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.StatsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.Ready)
	s.Equal(2, resp.TractCount)
	s.Equal(2, resp.StoreTracts)
	s.Equal(1, resp.ScoreCount)
	s.Require().NotNil(resp.LastLoad)
	s.Equal(string(domain.LoadSourceIngest), resp.LastLoad.Source)
}

func (s *HandlerTestSuite) TestAdminReloadRequiresToken() {
	s.seed()

	rec := s.doRequest(http.MethodPost, "/api/v1/admin/reload", nil, "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.doRequest(http.MethodPost, "/api/v1/admin/reload", nil, "wrong-token")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.doRequest(http.MethodPost, "/api/v1/admin/reload", nil, adminToken)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.IngestResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.OK)
	s.Equal(2, resp.TractCount)
}

func (s *HandlerTestSuite) TestAdminUploadScores() {
	s.seed()

	body := fmt.Sprintf(`{%q: 7, %q: 8}`, geoidA, geoidB)
	rec := s.doRequest(http.MethodPut, "/api/v1/admin/scores", strings.NewReader(body), adminToken)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.ScoresUploadResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.OK)
	s.Equal(2, resp.ScoreCount)

	// New scores apply after a reload.
	rec = s.doRequest(http.MethodPost, "/api/v1/admin/reload", nil, adminToken)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.doRequest(http.MethodGet, "/api/v1/score?lat=0.5&lon=0.5", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"score":7`)
}

func (s *HandlerTestSuite) TestAdminUploadScoresRejectsInvalid() {
	s.seed()

	rec := s.doRequest(http.MethodPut, "/api/v1/admin/scores", strings.NewReader(`{"x": "bad"}`), adminToken)
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("VALIDATION_ERROR", s.decodeError(rec).Error.Code)
}

func (s *HandlerTestSuite) TestAdminIngestTracts() {
	s.Require().NoError(os.WriteFile(s.scoresPath, []byte(`{"36061000100": 5}`), 0o644))

	feed := s.ndjsonLine("36061000100", -74, 40, -73, 41)
	rec := s.doRequest(http.MethodPost, "/api/v1/admin/tracts", strings.NewReader(feed), adminToken)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.IngestResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.OK)
	s.Equal(1, resp.TractCount)

	rec = s.doRequest(http.MethodGet, "/api/v1/score?lat=40.5&lon=-73.5", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "36061000100")
}

func (s *HandlerTestSuite) TestAdminIngestRejectsBadFeed() {
	rec := s.doRequest(http.MethodPost, "/api/v1/admin/tracts", strings.NewReader(`{"geoid": "x", "wkb": "zz"}`), adminToken)
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("VALIDATION_ERROR", s.decodeError(rec).Error.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
