package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataFor(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, MetadataFor(CodePolicyViolation).HTTPStatus)
	assert.Equal(t, http.StatusConflict, MetadataFor(CodeStockExhausted).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, MetadataFor(CodeEmptyCart).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("SOMETHING_ELSE")).HTTPStatus)
}

func TestAsFindsWrappedError(t *testing.T) {
	base := New(CodeStockExhausted, "no more croissants")
	wrapped := fmt.Errorf("add to cart: %w", base)

	typed := As(wrapped)
	assert.NotNil(t, typed)
	assert.Equal(t, CodeStockExhausted, typed.Code())
	assert.Equal(t, "no more croissants", typed.Message())
	assert.True(t, IsCode(wrapped, CodeStockExhausted))
	assert.False(t, IsCode(wrapped, CodeEmptyCart))
}

func TestCodeOfUntypedAndNil(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(stdErrors.New("boom")))
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.False(t, IsCode(nil, CodeInternal))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stdErrors.New("disk on fire")
	err := Wrap(CodeInternal, cause, "catalog load failed")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INTERNAL_ERROR: catalog load failed", err.Error())

	err = Wrap(CodeNotFound, nil, "missing")
	assert.Nil(t, err.Unwrap())
}

func TestWithDetails(t *testing.T) {
	err := New(CodeStockExhausted, "no stock").WithDetails(map[string]int{"available": 2})
	assert.Equal(t, map[string]int{"available": 2}, err.Details())

	var nilErr *Error
	assert.Nil(t, nilErr.WithDetails("x"))
	assert.Equal(t, CodeInternal, nilErr.Code())
}
