package utils

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// SplitWork runs do for every workIndex in [0, workSize) across routines goroutines.
// init is called once per routine before any work is started, and may be nil.
// A routines value <= 0 selects the number of CPUs minus the given amount, with a floor of 4.
func SplitWork(routines int, workSize uint64, do func(workIndex uint64, routineIndex int) error, init func(routines, routineIndex int) error) error {
	if routines <= 0 {
		routines = max(runtime.NumCPU()+routines, 4)
	}

	if workSize < uint64(routines) {
		routines = int(workSize)
	}

	if init != nil {
		for routineIndex := 0; routineIndex < routines; routineIndex++ {
			if err := init(routines, routineIndex); err != nil {
				return err
			}
		}
	}

	// no need to spin up goroutines
	if routines == 1 {
		for workIndex := range workSize {
			if err := do(workIndex, 0); err != nil {
				return err
			}
		}
		return nil
	}

	var counter atomic.Uint64

	var eg errgroup.Group

	for routineIndex := 0; routineIndex < routines; routineIndex++ {
		eg.Go(func() error {
			for {
				workIndex := counter.Add(1)
				if workIndex > workSize {
					return nil
				}

				if err := do(workIndex-1, routineIndex); err != nil {
					return err
				}
			}
		})
	}
	return eg.Wait()
}
