package properties

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newPropertyRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	router := gin.New()
	api := router.Group("/api")
	NewHandler(&Service{Repo: repo}).RegisterRoutes(api)
	return router, repo
}

func postJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateAndFetchProperty(t *testing.T) {
	router, _ := newPropertyRouter(t)

	resp := postJSON(t, router, http.MethodPost, "/api/properties", map[string]string{
		"name":    "Faith Plaza",
		"address": "12 Marina Road",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created propertyResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.ID == "" || created.Name != "Faith Plaza" {
		t.Fatalf("unexpected created property %+v", created)
	}

	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, httptest.NewRequest(http.MethodGet, "/api/properties/"+created.ID, nil))
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}
}

func TestCreatePropertyRequiresName(t *testing.T) {
	router, _ := newPropertyRouter(t)

	resp := postJSON(t, router, http.MethodPost, "/api/properties", map[string]string{"address": "somewhere"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUpdateUnknownProperty(t *testing.T) {
	router, _ := newPropertyRouter(t)

	resp := postJSON(t, router, http.MethodPut, "/api/properties/nope", map[string]string{"name": "New Name"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDeleteProperty(t *testing.T) {
	router, _ := newPropertyRouter(t)

	resp := postJSON(t, router, http.MethodPost, "/api/properties", map[string]string{"name": "Faith Plaza"})
	var created propertyResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	delResp := httptest.NewRecorder()
	router.ServeHTTP(delResp, httptest.NewRequest(http.MethodDelete, "/api/properties/"+created.ID, nil))
	if delResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", delResp.Code)
	}

	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, httptest.NewRequest(http.MethodGet, "/api/properties/"+created.ID, nil))
	if getResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", getResp.Code)
	}
}
