package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Property: malformed request bodies are answered with a 400 carrying the
// standard error structure, before any service is touched
func TestProperty_ErrorResponseStructure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	logger := zap.NewNop()

	properties.Property("all error responses carry code, message and details", prop.ForAll(
		func(errorScenario string) bool {
			w := httptest.NewRecorder()
			_, router := gin.CreateTestContext(w)

			// No service is attached; a handler that reached it would panic
			handler := &WellnessHandler{logger: logger}

			var req *http.Request
			switch errorScenario {
			case "invalid_json_checklist":
				router.POST("/test", handler.AddChecklistItem)
				req = httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString("{invalid json"))

			case "invalid_json_medicine":
				router.POST("/test", handler.AddMedicine)
				req = httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"name": "test", "dosage": }`))

			case "missing_checklist_label":
				router.POST("/test", handler.AddChecklistItem)
				req = httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"category":"health"}`))

			case "invalid_appointment_date":
				router.POST("/test", handler.AddAppointment)
				req = httptest.NewRequest(http.MethodPost, "/test",
					bytes.NewBufferString(`{"doctorName":"Dr. A","date":"25/01/2024","time":"10:00"}`))

			case "malformed_json_array":
				router.POST("/test", handler.AddReport)
				req = httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`[1,2,3`))

			case "wrong_metric_type":
				router.POST("/test", handler.LogActivity)
				req = httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"steps":"many"}`))

			default:
				return true
			}

			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Logf("Scenario %s: expected status %d, got %d", errorScenario, http.StatusBadRequest, w.Code)
				return false
			}

			var errorResp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &errorResp); err != nil {
				t.Logf("Scenario %s: failed to parse error response: %v, body: %s", errorScenario, err, w.Body.String())
				return false
			}

			if errorResp.Code != CodeValidation {
				t.Logf("Scenario %s: expected code %q, got %q", errorScenario, CodeValidation, errorResp.Code)
				return false
			}

			return errorResp.Message != "" && errorResp.Details != nil && *errorResp.Details != ""
		},
		gen.OneConstOf(
			"invalid_json_checklist",
			"invalid_json_medicine",
			"missing_checklist_label",
			"invalid_appointment_date",
			"malformed_json_array",
			"wrong_metric_type",
		),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
