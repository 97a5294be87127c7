package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/vcscsvcscs/wellness-companion/internal/service"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", fmt.Errorf("%w: label required", service.ErrInvalidInput), http.StatusBadRequest, CodeValidation},
		{"invalid metric", service.ErrInvalidMetric, http.StatusBadRequest, CodeValidation},
		{"missing email", service.ErrEmailRequired, http.StatusBadRequest, CodeValidation},
		{"unknown report", fmt.Errorf("%w: 42", service.ErrReportNotFound), http.StatusNotFound, CodeNotFound},
		{"analysis running", service.ErrAnalysisInProgress, http.StatusConflict, CodeConflict},
		{"anything else", errors.New("disk full"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := errorStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestDateConversions(t *testing.T) {
	d := types.Date{Time: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, "2024-02-01", dateToString(d))
	assert.Equal(t, "2024-02-01", datePtrToString(&d))
	assert.Equal(t, "", datePtrToString(nil))
	assert.Nil(t, optionalDate(nil))
	assert.Equal(t, "2024-02-01", *optionalDate(&d))
}
