package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"greentech_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseUUIDParam(t *testing.T) {
	router, _ := newTestRouter(t)
	router.GET("/jobs/:id", func(c *gin.Context) {
		id, ok := ParseUUIDParam(c, "id", apperrors.ErrJobNotFound)
		if !ok {
			return
		}
		c.String(http.StatusOK, id)
	})

	t.Run("valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/1b4e28ba-2fa1-11d2-883f-0016d3cca427", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", w.Body.String())
	})

	t.Run("malformed is not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/42", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "job", decodeBody(t, w)["domain"])
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"", 1, 20},
		{"?page=3&page_size=50", 3, 50},
		{"?page=0&page_size=-1", 1, 20},
		{"?page=abc&page_size=xyz", 1, 20},
		{"?page_size=1000", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

			page, pageSize := ParsePagination(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
