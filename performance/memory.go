// Package performance provides helpers for measuring the resource cost of
// fitting and predicting.
package performance

import (
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/mlwpy/mlwgo/pkg/errors"
	"github.com/mlwpy/mlwgo/pkg/log"
)

const bytesPerMiB = 1 << 20

// MemoryReport summarises heap activity observed around a single call.
type MemoryReport struct {
	// TotalAllocBytes is the number of heap bytes allocated during the call,
	// including memory that was freed again before it returned.
	TotalAllocBytes uint64
	// Mallocs is the number of heap objects allocated during the call.
	Mallocs uint64
	// HeapBeforeMiB and HeapAfterMiB are live heap sizes in MiB.
	HeapBeforeMiB float64
	HeapAfterMiB  float64
	// NumGC is the number of GC cycles completed during the call.
	NumGC    uint32
	Duration time.Duration
}

// HeapDeltaMiB returns the growth of the live heap in MiB. It is negative
// when the call released more than it retained.
func (r MemoryReport) HeapDeltaMiB() float64 {
	return r.HeapAfterMiB - r.HeapBeforeMiB
}

// String formats the report in the style of a line-profiler increment column.
func (r MemoryReport) String() string {
	return fmt.Sprintf("heap %.3f MiB -> %.3f MiB (increment %+.3f MiB), allocated %.3f MiB in %d objects, %d GC, %s",
		r.HeapBeforeMiB, r.HeapAfterMiB, r.HeapDeltaMiB(),
		float64(r.TotalAllocBytes)/bytesPerMiB, r.Mallocs, r.NumGC, r.Duration)
}

// MarshalZerologObject はzerologのイベントにメモリ計測結果を追加します。
func (r MemoryReport) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("total_alloc_bytes", r.TotalAllocBytes).
		Uint64("mallocs", r.Mallocs).
		Float64("heap_before_mib", r.HeapBeforeMiB).
		Float64("heap_after_mib", r.HeapAfterMiB).
		Float64("heap_delta_mib", r.HeapDeltaMiB()).
		Uint32("num_gc", r.NumGC).
		Dur("duration", r.Duration)
}

// MeasureMemory runs fn between two runtime.MemStats snapshots and reports
// how much heap it used. A GC is forced before each snapshot so the live
// heap figures exclude garbage left over from earlier work.
//
// A panic inside fn is returned as a PanicError together with the partial
// report.
//
//	report, err := performance.MeasureMemory(func() error {
//	    return clf.Fit(XTrain, yTrain)
//	})
func MeasureMemory(fn func() error) (MemoryReport, error) {
	if fn == nil {
		return MemoryReport{}, errors.NewValueError("MeasureMemory", "fn must not be nil")
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	start := time.Now()
	err := errors.SafeExecute("MeasureMemory", fn)
	elapsed := time.Since(start)

	runtime.ReadMemStats(&after)
	allocated := after.TotalAlloc - before.TotalAlloc
	mallocs := after.Mallocs - before.Mallocs
	numGC := after.NumGC - before.NumGC

	// 残存ヒープはGC後に測る
	runtime.GC()
	runtime.ReadMemStats(&after)

	report := MemoryReport{
		TotalAllocBytes: allocated,
		Mallocs:         mallocs,
		HeapBeforeMiB:   float64(before.HeapAlloc) / bytesPerMiB,
		HeapAfterMiB:    float64(after.HeapAlloc) / bytesPerMiB,
		NumGC:           numGC,
		Duration:        elapsed,
	}

	log.GetLoggerWithName("performance").Debug("memory measured",
		log.MemoryUsageKey, report.TotalAllocBytes,
		log.DurationMsKey, float64(elapsed.Microseconds())/1000,
		"memory", report,
	)
	return report, err
}
