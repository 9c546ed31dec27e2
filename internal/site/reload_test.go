package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReloadsBroadcast(t *testing.T) {
	r := newReloads()
	a, unsubA := r.subscribe()
	b, unsubB := r.subscribe()
	assert.Equal(t, 2, r.count())

	r.broadcast()
	r.broadcast() // a pending ping is not duplicated

	for _, ch := range []<-chan struct{}{a, b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("listener did not receive broadcast")
		}
		select {
		case <-ch:
			t.Fatal("listener received a second ping")
		default:
		}
	}

	unsubA()
	unsubB()
	assert.Equal(t, 0, r.count())
	r.broadcast()
}
