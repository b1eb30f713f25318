package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	emb := Zero(4)
	assert.Len(t, emb.Value, 4)
	for _, v := range emb.Value {
		assert.Zero(t, v)
	}
	assert.False(t, emb.CreatedAt.IsZero())
}
