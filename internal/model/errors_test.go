package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tokactl/internal/model"
)

func TestErrDeviceNotFound(t *testing.T) {
	assert := assert.New(t)

	err := fmt.Errorf("dut-1 on sandbox sb: %w", model.ErrDeviceNotFound)
	assert.ErrorIs(err, model.ErrDeviceNotFound)
	assert.ErrorIs(err, model.ErrNotFound)
	assert.False(errors.Is(model.ErrNotFound, model.ErrDeviceNotFound))
}

func TestAPIError(t *testing.T) {
	assert := assert.New(t)

	err := fmt.Errorf("could not reserve: %w", &model.APIError{StatusCode: 500, Body: "boom"})

	var apiErr *model.APIError
	assert.True(errors.As(err, &apiErr))
	assert.Equal(500, apiErr.StatusCode)
	assert.Contains(err.Error(), "status code 500: boom")
}
