package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKeysetAfter(t *testing.T) {
	t.Run("first page uses the nil uuid", func(t *testing.T) {
		got := keysetAfter("")
		assert.Equal(t, uuid.Nil.String(), got)

		parsed, err := uuid.Parse(got)
		assert.NoError(t, err, "sentinel must encode as a uuid parameter")
		assert.Equal(t, uuid.Nil, parsed)
	})

	t.Run("later pages pass the cursor through", func(t *testing.T) {
		cursor := uuid.NewString()
		assert.Equal(t, cursor, keysetAfter(cursor))
	})
}
