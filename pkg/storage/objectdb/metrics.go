package objectdb

import "time"

// MetricRegister tracks metrics of lookup operations.
type MetricRegister interface {
	AddHasDuration(d time.Duration)
	AddOpenDuration(d time.Duration)
}

func elapsed(addFunc func(d time.Duration)) func() {
	t := time.Now()

	return func() {
		addFunc(time.Since(t))
	}
}
