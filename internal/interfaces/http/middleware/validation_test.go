package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	UPC      string `json:"upc" binding:"required"`
	Quantity int    `json:"quantity" binding:"min=0"`
	Priority string `json:"priority" binding:"omitempty,oneof=low high"`
}

func TestHandleValidationError_UsesJSONFieldNames(t *testing.T) {
	SetupValidator()

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req sampleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"quantity":-1,"priority":"urgent"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Code)

	fields := map[string]string{}
	for _, d := range resp.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", fields["upc"])
	assert.Equal(t, "Must be at least 0", fields["quantity"])
	assert.Equal(t, "Must be one of: low high", fields["priority"])
}

func TestValidationDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}

type priorityRequest struct {
	Priority string `json:"priority" binding:"omitempty,priority"`
}

func TestSetupValidator_PriorityIgnoresCase(t *testing.T) {
	SetupValidator()

	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req priorityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		body string
		want int
	}{
		{`{"priority":"HIGH"}`, http.StatusOK},
		{`{"priority":"Critical"}`, http.StatusOK},
		{`{"priority":"low"}`, http.StatusOK},
		{`{}`, http.StatusOK},
		{`{"priority":"urgent"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusBadRequest {
				resp := decodeError(t, w)
				require.Len(t, resp.Details, 1)
				assert.Equal(t, "priority", resp.Details[0].Field)
				assert.Equal(t, "Must be one of: low medium high critical", resp.Details[0].Message)
			}
		})
	}
}
