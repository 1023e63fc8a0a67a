package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(ENOSELECTION, "nothing focused")
	assert.Equal(t, ENOSELECTION, Code(err))
	assert.Equal(t, "nothing focused", UserMessage(err))
	assert.True(t, Is(err, ENOSELECTION))
	assert.False(t, Is(err, ENOMATCH))
}

func TestWrappedCode(t *testing.T) {
	inner := Error(EUNSUPPORTED, "formatBlock disabled")
	outer := fmt.Errorf("applying command: %w", inner)
	assert.Equal(t, EUNSUPPORTED, Code(outer))
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	assert.Equal(t, "", UserMessage(nil))
}

func TestErrorWithCodeNil(t *testing.T) {
	err := ErrorWithCode(nil, ENOTEXT)
	assert.Equal(t, ENOTEXT, Code(err))
	assert.Equal(t, "non-text cursor context", UserMessage(err))
	w := WrapError(nil, EMISSING, "node %s", "li")
	assert.Equal(t, "node li", UserMessage(w))
}
