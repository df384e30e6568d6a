package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUUIDGenerator(t *testing.T) {
	var g UUIDGenerator
	a, b := g.NewID(), g.NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestSequenceGenerator(t *testing.T) {
	g := &SequenceGenerator{Prefix: "btn"}
	assert.Equal(t, "btn-1", g.NewID())
	assert.Equal(t, "btn-2", g.NewID())
}

func TestSHA256Hex(t *testing.T) {
	assert.Equal(t, "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a", SHA256Hex([]byte("{}")))
	assert.Len(t, SHA256Hex(nil), 64)
}
