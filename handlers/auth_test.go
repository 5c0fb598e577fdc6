package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"stayflow/config"
	"stayflow/utils"
)

func postIssueToken(t *testing.T, adminKey string, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/token", IssueToken)

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueTokenRoundTrip(t *testing.T) {
	config.AppConfig.AdminAPIKey = "admin-secret"
	config.AppConfig.JWTSecret = "test-signing-secret"

	w := postIssueToken(t, "admin-secret", map[string]string{"agencyId": "AG-100"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a token in the response")
	}

	// The issued token must pass the same validation the middleware runs.
	agencyID, err := utils.ExtractAgencyID(resp.Token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if agencyID != "AG-100" {
		t.Fatalf("agency id = %q, want AG-100", agencyID)
	}
}

func TestIssueTokenRejectsWrongAdminKey(t *testing.T) {
	config.AppConfig.AdminAPIKey = "admin-secret"
	config.AppConfig.JWTSecret = "test-signing-secret"

	w := postIssueToken(t, "wrong-key", map[string]string{"agencyId": "AG-100"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestIssueTokenDisabledWithoutAdminKey(t *testing.T) {
	config.AppConfig.AdminAPIKey = ""
	config.AppConfig.JWTSecret = "test-signing-secret"

	w := postIssueToken(t, "anything", map[string]string{"agencyId": "AG-100"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestIssueTokenRequiresAgencyID(t *testing.T) {
	config.AppConfig.AdminAPIKey = "admin-secret"
	config.AppConfig.JWTSecret = "test-signing-secret"

	w := postIssueToken(t, "admin-secret", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
