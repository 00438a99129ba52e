package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(url string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParseListParamsDefaults(t *testing.T) {
	skip, limit := ParseListParams(testContext("/students"))
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultLimit, limit)
}

func TestParseListParamsExplicit(t *testing.T) {
	skip, limit := ParseListParams(testContext("/students?skip=20&limit=50"))
	assert.Equal(t, 20, skip)
	assert.Equal(t, 50, limit)
}

func TestParseListParamsInvalidValues(t *testing.T) {
	skip, limit := ParseListParams(testContext("/students?skip=-5&limit=abc"))
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultLimit, limit)

	_, limit = ParseListParams(testContext("/students?limit=10000"))
	assert.Equal(t, DefaultLimit, limit)
}

func TestNormalizeListParams(t *testing.T) {
	skip, limit := NormalizeListParams(-1, 0)
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultLimit, limit)

	skip, limit = NormalizeListParams(10, MaxLimit+1)
	assert.Equal(t, 10, skip)
	assert.Equal(t, DefaultLimit, limit)

	skip, limit = NormalizeListParams(5, 25)
	assert.Equal(t, 5, skip)
	assert.Equal(t, 25, limit)
}
