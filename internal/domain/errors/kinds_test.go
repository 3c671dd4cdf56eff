package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalidInput, KindOf(InvalidInputErrorf("bad %s", "arg")))
	assert.Equal(t, KindTransport, KindOf(TransportErrorf("refused")))
	assert.Equal(t, KindUpstream, KindOf(UpstreamErrorf("rejected")))
	assert.Equal(t, KindDecode, KindOf(DecodeErrorf("garbage")))
	assert.Equal(t, KindTransport, KindOf(fmt.Errorf("plain error")), "untyped errors default to transport")
}

func TestUpstreamErrorStatus(t *testing.T) {
	err := UpstreamStatusErrorf(429, "slow down: %s", "rate limited")
	assert.Equal(t, 429, err.Status())
	assert.Equal(t, "slow down: rate limited", err.Error())
	assert.Equal(t, 0, UpstreamErrorf("no status").Status())
}
