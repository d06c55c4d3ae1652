package faults

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := New(KindValidation, "bad value")
	require.NotNil(t, err)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "bad value", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(KindConfiguration, "cannot read config", cause)

	assert.Equal(t, "cannot read config: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindOfWrappedSentinel(t *testing.T) {
	sentinel := New(KindEmptyTransition, "no outgoing edges")
	err := fmt.Errorf("%w: node %q", sentinel, "four")

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, KindEmptyTransition, KindOf(err))
	assert.True(t, IsEmptyTransition(err))
	assert.False(t, IsValidation(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestFormattingConstructors(t *testing.T) {
	c := Configuration("unknown class %q", "Foo")
	assert.True(t, IsConfiguration(c))
	assert.Equal(t, `unknown class "Foo"`, c.Error())

	v := Validation("weight %d", -1)
	assert.True(t, IsValidation(v))
}
