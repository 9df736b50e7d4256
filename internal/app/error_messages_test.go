package app

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageForStatus(t *testing.T) {
	assert.Equal(t, MsgRegistryUnavailable, MessageForStatus(http.StatusServiceUnavailable))
	assert.Equal(t, MsgInternalServerError, MessageForStatus(http.StatusInternalServerError))
	assert.Equal(t, MsgInternalServerError, MessageForStatus(http.StatusGatewayTimeout))
}
