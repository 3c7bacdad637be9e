package vocab

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fruit int

const (
	apple fruit = iota
	pear
	plum
)

func fruits() *Vocabulary[fruit] {
	return New("fruit",
		E(apple, "사과"),
		E(pear, "배"),
		E(plum, "자두"),
	)
}

func TestParseKnownLabel(t *testing.T) {
	t.Parallel()

	v := fruits()
	got, err := v.Parse("배")
	require.NoError(t, err)
	assert.Equal(t, pear, got)
	assert.Equal(t, "배", v.Label(pear))
}

func TestParseUnknownLabelNamesAxisAndValue(t *testing.T) {
	t.Parallel()

	_, err := fruits().Parse("Void2")
	require.Error(t, err)

	var unknown *UnknownValueError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "fruit", unknown.Axis)
	assert.Equal(t, "Void2", unknown.Value)
	assert.Contains(t, err.Error(), "fruit")
	assert.Contains(t, err.Error(), "Void2")
}

func TestIsUnknownValueThroughWrapping(t *testing.T) {
	t.Parallel()

	_, err := fruits().Parse("")
	wrapped := fmt.Errorf("decode row: %w", err)
	assert.True(t, IsUnknownValue(wrapped))
	assert.False(t, IsUnknownValue(errors.New("other")))
}

func TestDeclarationOrder(t *testing.T) {
	t.Parallel()

	v := fruits()
	assert.Equal(t, []fruit{apple, pear, plum}, v.Tags())
	assert.Equal(t, []string{"사과", "배", "자두"}, v.Labels())
	assert.True(t, v.Contains(plum))
	assert.False(t, v.Contains(fruit(42)))
	assert.Equal(t, "", v.Label(fruit(42)))
}

func TestNewPanicsOnDuplicates(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		New("fruit", E(apple, "사과"), E(pear, "사과"))
	})
	assert.Panics(t, func() {
		New("fruit", E(apple, "사과"), E(apple, "배"))
	})
}
