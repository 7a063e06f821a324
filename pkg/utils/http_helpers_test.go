package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "equipment-catalog/pkg/errors"
)

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.Empty(t, filter.Search)
	assert.Empty(t, filter.Filter)
	assert.Empty(t, filter.Sort)
}

func TestParseFilterFromQuery_LimitIsCapped(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "9999")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQuery_PageToOffset(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "50")
	values.Set("page", "3")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, 100, filter.Offset, "offset считается из страницы")
}

func TestParseFilterFromQuery_SortAndFilter(t *testing.T) {
	values := url.Values{}
	values.Set("sort[name]", "desc")
	values.Set("sort[created_at]", "вверх") // не asc/desc — игнорируется
	values.Set("filter[site_id]", "5")
	values.Set("search", "насос")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, map[string]string{"name": "desc"}, filter.Sort)
	assert.Equal(t, "5", filter.Filter["site_id"])
	assert.Equal(t, "насос", filter.Search)
}

func TestParseFilterFromQuery_CommaListPreserved(t *testing.T) {
	values := url.Values{}
	values.Set("filter[site_id]", "1,2")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, "1,2", filter.Filter["site_id"])
}

func TestParseFilterFromQuery_BadNumbersIgnored(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "abc")
	values.Set("page", "-2")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
}

func TestErrorResponse_TokenErrorsAreUnauthorized(t *testing.T) {
	tokenErrs := []error{
		apperrors.ErrTokenIsNotAccess,
		apperrors.ErrTokenIsNotRefresh,
		apperrors.ErrTokenNotYetValid,
		apperrors.ErrTokenExpired,
		apperrors.ErrInvalidToken,
	}

	e := echo.New()
	for _, err := range tokenErrs {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, ErrorResponse(c, err, zap.NewNop()))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "ошибка %q должна давать 401", err)
	}
}
