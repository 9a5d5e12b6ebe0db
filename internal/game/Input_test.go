package game

import (
	"sync"
	"testing"
)

func TestInputState(t *testing.T) {
	in := NewInputState()
	in.Press(MoveLeft)
	in.Press(Jump)
	in.Release(Jump)

	if !in.Held(MoveLeft) || in.Held(MoveRight) || in.Held(Jump) {
		t.Fatalf("left=%v right=%v jump=%v", in.Held(MoveLeft), in.Held(MoveRight), in.Held(Jump))
	}

	in.Apply(Controls{Right: true, Jump: true})
	if in.Held(MoveLeft) || !in.Held(MoveRight) || !in.Held(Jump) {
		t.Fatal("Apply did not replace every flag")
	}

	in.Clear()
	for _, action := range []Action{MoveLeft, MoveRight, Jump} {
		if in.Held(action) {
			t.Errorf("%s still held after Clear", action)
		}
	}
}

func TestInputStateConcurrentAccess(t *testing.T) {
	in := NewInputState()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 1000 {
				action := Action((i + j) % 3)
				in.Press(action)
				in.Held(action)
				in.Release(action)
			}
		}()
	}
	wg.Wait()
}
