package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(CodeOK))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeBadRequest))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(CodeUnauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(CodeForbidden))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(CodeConflict))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeServerError))

	// HTTP 语义之外的业务码一律 500
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(10001))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(-1))
}

func TestRespHelpers(t *testing.T) {
	ok := OK("data")
	assert.Equal(t, CodeOK, ok.Code)
	assert.Equal(t, "data", ok.Data)

	e := Error(CodeNotFound, "nope")
	assert.Equal(t, CodeNotFound, e.Code)
	assert.Equal(t, "nope", e.Msg)
}
