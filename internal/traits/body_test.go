package traits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBody_Move(t *testing.T) {
	b := &Body{X: 1, Y: 2, VX: 10, VY: -4}
	b.Move(500 * time.Millisecond)
	x, y := b.Position()
	assert.InDelta(t, 6, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
}

func TestBody_Center(t *testing.T) {
	b := &Body{Width: 4, Height: 2}
	b.SetPosition(10, 10)
	x, y := b.Center()
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 11.0, y)
}

func TestLifetime_Tick(t *testing.T) {
	l := &Lifetime{Remaining: 25 * time.Millisecond}
	assert.False(t, l.Tick(10*time.Millisecond))
	assert.False(t, l.Tick(10*time.Millisecond))
	assert.True(t, l.Tick(10*time.Millisecond))
}
