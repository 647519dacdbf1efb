package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motor-audit/internal/api/models"
	"motor-audit/internal/audit"
	"motor-audit/internal/model"
)

const energyCSV = "time, p1, p2, p3, energy\n" +
	"2024-01-15 05:50:00+00,100,100,100,1000\n" +
	"2024-01-15 05:55:00+00,100,100,100,1000\n" +
	"2024-01-15 06:00:00+00,5000,5000,5000,2000\n" +
	"2024-01-15 06:05:00+00,30000,30000,30000,50000\n" +
	"2024-01-15 06:10:00+00,50000,50000,50000,4000\n"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cache, err := audit.NewResultCache(8)
	require.NoError(t, err)

	motor := model.DefaultMotorProfile()
	tariff := model.DefaultTariffTable()
	mh := NewMotorHandler("default", motor)
	th := NewTariffHandler(tariff, "paise")
	rh := NewReportHandler(audit.New(motor, tariff, logger), cache, ReportOptions{
		CurrencyUnit: "paise",
		Logger:       logger,
	})

	r := gin.New()
	r.GET("/motor", mh.GetMotor)
	r.POST("/classify", mh.Classify)
	r.GET("/tariff", th.GetTariff)
	r.GET("/tariff/rate", th.GetRate)
	r.POST("/reports", rh.CreateReport)
	r.GET("/reports/:id", rh.GetReport)
	r.GET("/reports/:id/ledger", rh.GetLedger)
	r.GET("/reports/:id/export", rh.ExportReport)
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorDetail {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error
}

func multipartRequest(t *testing.T, target string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func createReport(t *testing.T, r http.Handler, files map[string]string) models.ReportResponse {
	t.Helper()
	w := do(r, multipartRequest(t, "/reports", files))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetMotor(t *testing.T) {
	w := do(newRouter(t), httptest.NewRequest(http.MethodGet, "/motor", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var info models.MotorInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, 90.0, info.EquipmentRatingKW)
	assert.InDelta(t, 100.0, info.RatedPowerKW, 1e-9)
	assert.InDelta(t, 1.0, info.Thresholds.VampireKW, 1e-9)
	assert.InDelta(t, 30.0, info.Thresholds.IdleKW, 1e-9)
	assert.InDelta(t, 120.0, info.Thresholds.OverloadKW, 1e-9)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantState  string
	}{
		{"vampire", `{"power_kw": 0.5}`, http.StatusOK, "vampire"},
		{"phases", `{"p1": 20000, "p2": 20000, "p3": 20000}`, http.StatusOK, "normal"},
		{"overload", `{"power_kw": 121}`, http.StatusOK, "overload"},
		{"zero", `{"power_kw": 0}`, http.StatusOK, "unknown"},
		{"partial phases", `{"p1": 1, "p2": 2}`, http.StatusBadRequest, ""},
		{"empty", `{}`, http.StatusBadRequest, ""},
		{"not json", `power`, http.StatusBadRequest, ""},
	}

	r := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := do(r, req)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Code)
				return
			}
			var resp models.ClassifyResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantState, resp.State)
		})
	}
}

func TestGetTariff(t *testing.T) {
	w := do(newRouter(t), httptest.NewRequest(http.MethodGet, "/tariff", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var info models.TariffInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, 593, info.DefaultRate)
	assert.Equal(t, "paise", info.CurrencyUnit)
	require.Len(t, info.Bands, 2)
	assert.Equal(t, models.BandInfo{Name: "peak", StartHour: 18, EndHour: 22, Rate: 1185}, info.Bands[1])
}

func TestGetRate(t *testing.T) {
	tests := []struct {
		at       string
		wantBand string
		wantRate int
	}{
		{"2024-01-15 05:59:00+00", "off-peak", 593},
		{"2024-01-15 06:00:00+00", "day", 790},
		{"2024-01-15T19:30:00Z", "peak", 1185},
		{"2024-01-15 22:00:00+05:30", "off-peak", 593},
	}

	r := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			w := do(r, httptest.NewRequest(http.MethodGet, "/tariff/rate?time="+url.QueryEscape(tt.at), nil))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp models.RateResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBand, resp.Band)
			assert.Equal(t, tt.wantRate, resp.Rate)
		})
	}

	w := do(r, httptest.NewRequest(http.MethodGet, "/tariff/rate?time=noon", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TIME", decodeError(t, w).Code)

	w = do(r, httptest.NewRequest(http.MethodGet, "/tariff/rate", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Code)
}

func TestCreateReport(t *testing.T) {
	r := newRouter(t)
	resp := createReport(t, r, map[string]string{"energy": energyCSV})

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, []string{"energy.csv"}, resp.Sources)
	assert.Empty(t, resp.Ledger)

	s := resp.Summary
	assert.Equal(t, map[string]int64{"vampire": 2, "idle": 2, "normal": 50, "overload": 4}, s.EnergyKWh)
	assert.Equal(t, map[string]int64{"vampire": 1186, "idle": 1580}, s.Cost)
	require.Len(t, s.Periods["vampire"], 1)
	assert.Equal(t, "05:50", s.Periods["vampire"][0].Start)
	assert.Equal(t, "05:55", s.Periods["vampire"][0].End)
	assert.Equal(t, 5.0, s.Periods["vampire"][0].Minutes)
	assert.Equal(t, "06:10", s.Periods["overload"][0].Start)
	require.Len(t, s.CostByBand["idle"], 1)
	assert.Equal(t, "day", s.CostByBand["idle"][0].Band)
	assert.Equal(t, 1, s.SampleCounts["overload"])
	assert.Equal(t, 5, s.LoadProfile.Count)
	assert.InDelta(t, 150.0, s.LoadProfile.MaxKW, 1e-9)
}

func TestCreateReportSeparatePowerFile(t *testing.T) {
	power := "time,p1,p2,p3,energy\n" +
		"2024-01-15 10:00:00+00,50000,50000,50000,0\n" +
		"2024-01-15 10:01:00+00,50000,50000,50000,0\n"

	resp := createReport(t, newRouter(t), map[string]string{"energy": energyCSV, "power": power})
	assert.Len(t, resp.Sources, 2)
	require.Len(t, resp.Summary.Periods["overload"], 1)
	assert.Equal(t, "10:00", resp.Summary.Periods["overload"][0].Start)
	assert.Equal(t, "10:01", resp.Summary.Periods["overload"][0].End)
	assert.Empty(t, resp.Summary.Periods["vampire"])
	assert.Equal(t, int64(1186), resp.Summary.Cost["vampire"])
}

func TestCreateReportErrors(t *testing.T) {
	r := newRouter(t)

	w := do(r, multipartRequest(t, "/reports", map[string]string{"power": energyCSV}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeError(t, w).Code)

	bad := "time,p1,p2,p3,energy\n2024-01-15 05:50:00+00,1,x,1,1\n"
	w = do(r, multipartRequest(t, "/reports", map[string]string{"energy": bad}))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, "MALFORMED_RECORD", detail.Code)
	assert.Equal(t, "energy.csv", detail.Details["source"])
	assert.Equal(t, 2.0, detail.Details["line"])
	assert.Equal(t, "p2", detail.Details["field"])

	w = do(r, httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader("{}")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReportAndLedger(t *testing.T) {
	r := newRouter(t)
	created := createReport(t, r, map[string]string{"energy": energyCSV})

	w := do(r, httptest.NewRequest(http.MethodGet, "/reports/"+created.ID+"?include_ledger=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got models.ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Ledger, 5)

	w = do(r, httptest.NewRequest(http.MethodGet, "/reports/"+created.ID+"/ledger", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var ledger models.LedgerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ledger))
	require.Len(t, ledger.Ledger, 5)
	assert.Equal(t, "vampire", ledger.Ledger[0].State)
	assert.Equal(t, "off-peak", ledger.Ledger[0].Band)
	assert.Equal(t, 790, ledger.Ledger[2].Rate)

	w = do(r, httptest.NewRequest(http.MethodGet, "/reports/does-not-exist", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "REPORT_NOT_FOUND", decodeError(t, w).Code)
}

func TestExportReport(t *testing.T) {
	r := newRouter(t)
	id := createReport(t, r, map[string]string{"energy": energyCSV}).ID

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
		{"pdf", "application/pdf", "%PDF-"},
		{"csv", "text/csv", "index,time,"},
	}
	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			w := do(r, httptest.NewRequest(http.MethodGet, "/reports/"+id+"/export?format="+tt.format, nil))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), "report-"+id)
			assert.True(t, strings.HasPrefix(w.Body.String(), tt.prefix))
		})
	}

	w := do(r, httptest.NewRequest(http.MethodGet, "/reports/"+id+"/export?format=docx", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", decodeError(t, w).Code)
}
