package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  Params
	}{
		{query: "", want: Params{Page: 1, Limit: 10, Skip: 0}},
		{query: "page=3&limit=20", want: Params{Page: 3, Limit: 20, Skip: 40}},
		{query: "skip=25&limit=5", want: Params{Page: 6, Limit: 5, Skip: 25}},
		{query: "limit=500", want: Params{Page: 1, Limit: 100, Skip: 0}},
		{query: "page=-2&limit=0&skip=-1", want: Params{Page: 1, Limit: 10, Skip: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)
			assert.Equal(t, tt.want, Parse(c))
		})
	}
}
