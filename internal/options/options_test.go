package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	value int
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		tgt := &target{}
		err := Apply(tgt,
			NoError(func(tg *target) { tg.value = 1 }),
			NoError(func(tg *target) { tg.value *= 10 }),
		)
		require.NoError(t, err)
		require.Equal(t, 10, tgt.value)
	})

	t.Run("stops on first error", func(t *testing.T) {
		wantErr := errors.New("boom")
		tgt := &target{}
		err := Apply(tgt,
			New(func(*target) error { return wantErr }),
			NoError(func(tg *target) { tg.value = 99 }),
		)
		require.ErrorIs(t, err, wantErr)
		require.Equal(t, 0, tgt.value)
	})
}
