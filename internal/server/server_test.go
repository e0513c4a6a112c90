package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/LCLAMEDIA/openorders/internal/config"
	"github.com/LCLAMEDIA/openorders/internal/model"
	"github.com/LCLAMEDIA/openorders/internal/pipeline"
	"github.com/LCLAMEDIA/openorders/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()
	cfg.Business.Timezone = "UTC"
	cfg.Reference.MappingPath = cfg.DataPath("uploads", "missing.xlsx")
	cfg.Reference.InventoryPath = cfg.DataPath("uploads", "missing.csv")
	if err := cfg.EnsureDataDir(); err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return NewServer(cfg, st, pipeline.New(cfg, st, nil), nil)
}

func reportUpload(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	header := make([]interface{}, len(model.RequiredColumns))
	for i, col := range model.RequiredColumns {
		header[i] = col
	}
	row := []interface{}{"SAK-1001", "Fashion Biz", "10", "", "", "", "", "", "", ""}
	for i, r := range [][]interface{}{header, row} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	data, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(data.Bytes()); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()
	return body, mw.FormDataContentType()
}

func doRequest(t *testing.T, s *Server, req *http.Request) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	_, resp := doRequest(t, s, httptest.NewRequest("GET", "/api/health", nil))
	if resp.Code != 0 {
		t.Errorf("code = %d, want 0", resp.Code)
	}
}

func TestProcessEndpoint(t *testing.T) {
	s := testServer(t)

	body, contentType := reportUpload(t, "orders.xlsx")
	req := httptest.NewRequest("POST", "/api/oor/process", body)
	req.Header.Set("Content-Type", contentType)

	_, resp := doRequest(t, s, req)
	if resp.Code != 0 {
		t.Fatalf("code = %d (%s)", resp.Code, resp.Message)
	}

	data, _ := json.Marshal(resp.Data)
	var outcome pipeline.Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		t.Fatalf("unmarshal outcome: %v", err)
	}
	if outcome.RunID == "" || outcome.Stats.TotalRows != 1 {
		t.Errorf("outcome = %+v", outcome)
	}

	// The run must be visible through the runs API.
	_, runResp := doRequest(t, s, httptest.NewRequest("GET", "/api/oor/runs/"+outcome.RunID, nil))
	if runResp.Code != 0 {
		t.Errorf("GetRun code = %d", runResp.Code)
	}
}

func TestProcessEndpointClassifiedFailure(t *testing.T) {
	s := testServer(t)

	body, contentType := reportUpload(t, "orders.txt")
	req := httptest.NewRequest("POST", "/api/oor/process", body)
	req.Header.Set("Content-Type", contentType)

	w, resp := doRequest(t, s, req)
	// Classified failures still answer 200 with the failure envelope.
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if resp.Code != 2001 || resp.Message != string(model.ValidationError) {
		t.Errorf("resp = (%d, %q), want (2001, validation_error)", resp.Code, resp.Message)
	}
}

func TestProcessEndpointMissingFile(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/api/oor/process", nil)
	_, resp := doRequest(t, s, req)
	if resp.Code != 1001 {
		t.Errorf("code = %d, want 1001", resp.Code)
	}
}

func TestListRunsEmpty(t *testing.T) {
	s := testServer(t)
	_, resp := doRequest(t, s, httptest.NewRequest("GET", "/api/oor/runs", nil))
	if resp.Code != 0 {
		t.Errorf("code = %d, want 0", resp.Code)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := testServer(t)
	_, resp := doRequest(t, s, httptest.NewRequest("GET", "/api/oor/runs/nope", nil))
	if resp.Code != 4004 {
		t.Errorf("code = %d, want 4004", resp.Code)
	}
}

func TestDownloadExportRejectsPathTraversal(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("GET", "/api/oor/exports/..", nil)
	_, resp := doRequest(t, s, req)
	if resp.Code != 4001 {
		t.Errorf("code = %d, want 4001", resp.Code)
	}
}
