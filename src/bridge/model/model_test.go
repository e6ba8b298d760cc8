package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/gateway/target"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestActiveStepFulfillsOnce(t *testing.T) {
	step := NewActiveStep(4, target.StepOver, target.Watch{Kind: target.WatchStep, ID: 9})

	var wg sync.WaitGroup
	wins := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins <- step.Fulfill(entity.StepResult{Status: entity.StepCompleted, ThreadID: uint64(i)})
		}(i)
	}
	wg.Wait()
	close(wins)

	count := 0
	for won := range wins {
		if won {
			count++
		}
	}
	assert.Equal(t, 1, count)

	result := <-step.Done()
	assert.Equal(t, entity.StepCompleted, result.Status)
	select {
	case <-step.Done():
		t.Fatal("completion delivered twice")
	default:
	}
}

func TestWatches(t *testing.T) {
	line := target.Watch{Kind: target.WatchLine, ID: 1}
	load := target.Watch{Kind: target.WatchClassLoad, ID: 2}

	assert.Empty(t, (&Breakpoint{}).Watches())
	assert.Equal(t, []target.Watch{line, load}, (&Breakpoint{LineWatch: &line, LoadWatch: &load}).Watches())

	exc := target.Watch{Kind: target.WatchException, ID: 3}
	assert.Equal(t, []target.Watch{exc}, (&ExceptionBreakpoint{ExceptionWatch: &exc}).Watches())
}
