// Package testbench drives timed single-owner workloads over any buffer
// satisfying the shared contract. The engine assumes exclusive access, so
// unlike a queue benchmark there are no producer/consumer goroutines: one
// goroutine owns the buffer and we measure how many operations it completes
// in the window.
package testbench

import (
	"time"

	"github.com/i5heu/GoRingKit/pkg/ring"
)

// Workload selects the operation mix applied to the buffer under test.
type Workload string

const (
	// WorkloadPush pushes continuously; on a full fixed buffer every push
	// exercises the evict-and-overwrite path.
	WorkloadPush Workload = "push"

	// WorkloadMixed alternates a push with a dequeue, holding the buffer
	// around half full and exercising both cursor paths.
	WorkloadMixed Workload = "mixed"

	// WorkloadScan fills the buffer once, then repeatedly walks it with the
	// relative-index iterator. Each visited element counts as one operation.
	WorkloadScan Workload = "scan"
)

// Workloads lists every workload in the order the bench CLI runs them.
var Workloads = []Workload{WorkloadPush, WorkloadMixed, WorkloadScan}

// checkEvery bounds how often the clock is consulted, so the timer does not
// dominate short operations.
const checkEvery = 1024

// RunTimed applies the workload to buf for roughly the given duration and
// returns the number of operations completed and the measured elapsed time.
// valueGenerator produces the i-th pushed value.
func RunTimed[T any](buf ring.Buffer[T], w Workload, d time.Duration, valueGenerator func(int) T) (ops int64, elapsed time.Duration) {
	start := time.Now()
	deadline := start.Add(d)

	switch w {
	case WorkloadPush:
		for i := 0; ; {
			for n := 0; n < checkEvery; n++ {
				buf.Push(valueGenerator(i))
				i++
			}
			ops += checkEvery
			if time.Now().After(deadline) {
				return ops, time.Since(start)
			}
		}

	case WorkloadMixed:
		for i := 0; ; {
			for n := 0; n < checkEvery; n += 2 {
				buf.Push(valueGenerator(i))
				i++
				buf.Dequeue()
			}
			ops += checkEvery
			if time.Now().After(deadline) {
				return ops, time.Since(start)
			}
		}

	case WorkloadScan:
		buf.Fill(func() T { return valueGenerator(0) })
		for {
			it := ring.NewIter[T](buf)
			for {
				if _, ok := it.Next(); !ok {
					break
				}
				ops++
			}
			if time.Now().After(deadline) {
				return ops, time.Since(start)
			}
		}
	}

	return 0, time.Since(start)
}
