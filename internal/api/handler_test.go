package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mfontes/hspulse/internal/domain/dto"
	"github.com/mfontes/hspulse/internal/domain/models"
	"github.com/mfontes/hspulse/internal/ingestion"
	"github.com/mfontes/hspulse/internal/service"
)

type mockDatasetService struct {
	records    []models.TradeRecord
	series     []models.WorldPoint
	partners   []models.PartnerRank
	production []models.ProductionRecord
	err        error

	lastFilter service.Filter
	lastQuery  service.PartnersQuery
}

func (m *mockDatasetService) Records(_ context.Context, f service.Filter) ([]models.TradeRecord, error) {
	m.lastFilter = f
	return m.records, m.err
}

func (m *mockDatasetService) WorldSeries(_ context.Context, f service.Filter) ([]models.WorldPoint, error) {
	m.lastFilter = f
	return m.series, m.err
}

func (m *mockDatasetService) TopPartners(_ context.Context, q service.PartnersQuery) ([]models.PartnerRank, error) {
	m.lastQuery = q
	return m.partners, m.err
}

func (m *mockDatasetService) Production(context.Context) ([]models.ProductionRecord, error) {
	return m.production, m.err
}

var _ service.DatasetService = (*mockDatasetService)(nil)

func setupRouterWithMock(m *mockDatasetService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(m)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/records", h.GetRecords)
	v1.GET("/world-series", h.GetWorldSeries)
	v1.GET("/partners", h.GetPartners)
	v1.GET("/production", h.GetProduction)
	v1.GET("/export/records.csv", h.ExportRecordsCSV)
	return r
}

func doGet(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func fv(v float64) *float64 { return &v }

func TestGetRecords_TableDriven(t *testing.T) {
	// Values are in USD thousand as stored in the source workbooks, so
	// 2e6 thousand is 2 billion USD.
	sample := []models.TradeRecord{
		{Country: "India", Year: 2013, Flow: models.FlowImports, Value: fv(2e6), Code: "710210"},
		{Country: "Belgium", Year: 2013, Flow: models.FlowImports, Code: "710210"},
	}

	cases := []struct {
		name   string
		svc    *mockDatasetService
		query  string
		status int
		assert func(t *testing.T, svc *mockDatasetService, body []byte)
	}{
		{
			name:   "defaults",
			svc:    &mockDatasetService{records: sample},
			query:  "/api/v1/records",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockDatasetService, body []byte) {
				var out dto.RecordsResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Family != "hs7102" || out.Unit != "USD thousand" || out.Count != 2 {
					t.Fatalf("unexpected response: %+v", out)
				}
				if *out.Records[0].Value != 2e6 {
					t.Fatalf("default unit must not scale: %v", *out.Records[0].Value)
				}
			},
		},
		{
			name:   "unit scaling leaves missing values missing",
			svc:    &mockDatasetService{records: sample},
			query:  "/api/v1/records?unit=usd_bn",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockDatasetService, body []byte) {
				var out dto.RecordsResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Unit != "USD Bn" {
					t.Fatalf("unit label: %s", out.Unit)
				}
				if *out.Records[0].Value != 2 {
					t.Fatalf("scaled value: want 2 got %v", *out.Records[0].Value)
				}
				if out.Records[1].Value != nil {
					t.Fatalf("missing value must stay null after scaling")
				}
			},
		},
		{
			name:   "millions divide stored thousands by 1e3",
			svc:    &mockDatasetService{records: sample},
			query:  "/api/v1/records?unit=usd_mn",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockDatasetService, body []byte) {
				var out dto.RecordsResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Unit != "USD Mn" {
					t.Fatalf("unit label: %s", out.Unit)
				}
				if *out.Records[0].Value != 2e3 {
					t.Fatalf("scaled value: want 2000 got %v", *out.Records[0].Value)
				}
			},
		},
		{
			name:   "filters forwarded to service",
			svc:    &mockDatasetService{},
			query:  "/api/v1/records?family=hs7104&flow=exports&code=710421,710491&country=India&year_from=2013&year_to=2020",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockDatasetService, _ []byte) {
				f := svc.lastFilter
				if f.Family != "hs7104" || f.Flow != models.FlowExports {
					t.Fatalf("filter: %+v", f)
				}
				if len(f.Codes) != 2 || f.Codes[0] != "710421" {
					t.Fatalf("codes: %v", f.Codes)
				}
				if f.YearFrom != 2013 || f.YearTo != 2020 {
					t.Fatalf("years: %+v", f)
				}
			},
		},
		{
			name:   "unknown family",
			svc:    &mockDatasetService{},
			query:  "/api/v1/records?family=hs9999",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid flow",
			svc:    &mockDatasetService{},
			query:  "/api/v1/records?flow=sideways",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid year_from",
			svc:    &mockDatasetService{},
			query:  "/api/v1/records?year_from=abc",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid unit",
			svc:    &mockDatasetService{},
			query:  "/api/v1/records?unit=eur",
			status: http.StatusBadRequest,
		},
		{
			name:   "empty dataset is unprocessable",
			svc:    &mockDatasetService{err: ingestion.ErrEmptyDataset},
			query:  "/api/v1/records",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "structural error is unprocessable",
			svc:    &mockDatasetService{err: &ingestion.StructuralError{Sheet: "710210", Reason: "bad"}},
			query:  "/api/v1/records",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "other errors are internal",
			svc:    &mockDatasetService{err: errors.New("disk gone")},
			query:  "/api/v1/records",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := doGet(t, r, tc.query)
			if w.Code != tc.status {
				t.Fatalf("status: want %d got %d (body %s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetWorldSeries_ScalesAllFields(t *testing.T) {
	svc := &mockDatasetService{series: []models.WorldPoint{
		{Year: 2013, Imports: 2e3, Exports: 3e3, Balance: 1e3},
	}}
	r := setupRouterWithMock(svc)

	w := doGet(t, r, "/api/v1/world-series?unit=usd_mn")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var out dto.WorldSeriesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	p := out.Series[0]
	if p.Imports != 2 || p.Exports != 3 || p.Balance != 1 {
		t.Fatalf("scaled point: %+v", p)
	}
}

func TestGetPartners_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockDatasetService
		query  string
		status int
		assert func(t *testing.T, svc *mockDatasetService, body []byte)
	}{
		{
			name:   "missing flow",
			svc:    &mockDatasetService{},
			query:  "/api/v1/partners?year=2013",
			status: http.StatusBadRequest,
		},
		{
			name:   "missing year",
			svc:    &mockDatasetService{},
			query:  "/api/v1/partners?flow=imports",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid top",
			svc:    &mockDatasetService{},
			query:  "/api/v1/partners?flow=imports&year=2013&top=0",
			status: http.StatusBadRequest,
		},
		{
			name: "success with share metric",
			svc: &mockDatasetService{partners: []models.PartnerRank{
				{Rank: 1, Country: "India", Value: 5e3, Share: 50},
			}},
			query:  "/api/v1/partners?flow=imports&year=2013&top=5&metric=share&unit=usd_mn",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockDatasetService, body []byte) {
				q := svc.lastQuery
				if q.Year != 2013 || q.TopN != 5 || !q.WithShare || q.Flow != models.FlowImports {
					t.Fatalf("query: %+v", q)
				}
				var out dto.PartnersResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Flow != "Imports" || out.Year != 2013 || out.Unit != "USD Mn" {
					t.Fatalf("response: %+v", out)
				}
				if out.Partners[0].Value != 5 {
					t.Fatalf("value should be scaled: %v", out.Partners[0].Value)
				}
				if out.Partners[0].Share != 50 {
					t.Fatalf("share must not be scaled: %v", out.Partners[0].Share)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := doGet(t, r, tc.query)
			if w.Code != tc.status {
				t.Fatalf("status: want %d got %d (body %s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetProduction(t *testing.T) {
	svc := &mockDatasetService{production: []models.ProductionRecord{
		{Country: "Angola", Year: 2019},
	}}
	r := setupRouterWithMock(svc)

	w := doGet(t, r, "/api/v1/production")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var out struct {
		Count   int                       `json:"count"`
		Records []models.ProductionRecord `json:"records"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 1 || out.Records[0].Country != "Angola" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestGetProduction_Error(t *testing.T) {
	svc := &mockDatasetService{err: errors.New("file missing")}
	r := setupRouterWithMock(svc)

	if w := doGet(t, r, "/api/v1/production"); w.Code != http.StatusInternalServerError {
		t.Fatalf("status: %d", w.Code)
	}
}
