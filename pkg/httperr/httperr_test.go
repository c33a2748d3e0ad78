package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"cropwatch/entities"
)

func TestStatusMapsErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{entities.ErrNotFound, http.StatusNotFound},
		{entities.ErrCapacityExceeded, http.StatusConflict},
		{entities.ErrProtected, http.StatusForbidden},
		{entities.ErrInvalidFormat, http.StatusBadRequest},
		{entities.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), "for %v", tt.err)
	}
}

func TestStatusUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("%w: field limit 50 reached", entities.ErrCapacityExceeded)
	assert.Equal(t, http.StatusConflict, Status(err))
}
