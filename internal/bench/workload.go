package bench

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
)

// Property keys understood by Load. Unknown keys in a workload file are
// ignored so files can carry operator-specific extras.
const (
	PropRecordCount      = "recordcount"
	PropOperationCount   = "operationcount"
	PropThreadCount      = "threadcount"
	PropReadProportion   = "readproportion"
	PropUpdateProportion = "updateproportion"
	PropDeleteProportion = "deleteproportion"
	PropKeyPrefix        = "keyprefix"
	PropValueSize        = "valuesize"
	PropTarget           = "target"
)

// Defaults applied when a property is missing from the workload file.
const (
	DefaultRecordCount      = 1000
	DefaultOperationCount   = 10000
	DefaultThreadCount      = 4
	DefaultReadProportion   = 0.70
	DefaultUpdateProportion = 0.25
	DefaultDeleteProportion = 0.05
	DefaultKeyPrefix        = "key"
	DefaultValueSize        = 100
	DefaultTarget           = 0
)

// proportionSumTolerance absorbs rounding slop when checking that the
// operation mix covers the whole probability space.
const proportionSumTolerance = 0.01

// Workload describes one benchmark run: the preloaded population, the
// number and mix of timed operations, and the pacing.
//
// General notes:
//   - The proportions choose the operation per iteration and must sum
//     to 1 within a small tolerance.
//   - Target caps the run's total throughput in operations per second;
//     0 means unthrottled.
//   - Deleted keys are reinserted off the clock, so the population stays
//     at RecordCount for the whole run and reads keep finding keys.
type Workload struct {
	// RecordCount is the number of entries preloaded before timing starts.
	RecordCount int
	// OperationCount is the total number of timed operations across all
	// threads.
	OperationCount int
	// ThreadCount is the number of worker goroutines.
	ThreadCount int
	// ReadProportion is the fraction of operations that look up a key.
	ReadProportion float64
	// UpdateProportion is the fraction of operations that overwrite an
	// existing key.
	UpdateProportion float64
	// DeleteProportion is the fraction of operations that remove a key.
	DeleteProportion float64
	// KeyPrefix is prepended to every generated key.
	KeyPrefix string
	// ValueSize is the length in bytes of generated values.
	ValueSize int
	// Target is the operations-per-second budget shared by all threads;
	// 0 disables throttling.
	Target int
}

// DefaultWorkload returns the standard read-heavy mix.
func DefaultWorkload() *Workload {
	return &Workload{
		RecordCount:      DefaultRecordCount,
		OperationCount:   DefaultOperationCount,
		ThreadCount:      DefaultThreadCount,
		ReadProportion:   DefaultReadProportion,
		UpdateProportion: DefaultUpdateProportion,
		DeleteProportion: DefaultDeleteProportion,
		KeyPrefix:        DefaultKeyPrefix,
		ValueSize:        DefaultValueSize,
		Target:           DefaultTarget,
	}
}

// Load reads a workload from a properties file, filling missing keys from
// the defaults, and validates the result.
func Load(path string) (*Workload, error) {
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("load workload file: %w", err)
	}

	return FromProperties(props)
}

// FromProperties builds and validates a Workload from parsed properties.
func FromProperties(props *properties.Properties) (*Workload, error) {
	w := &Workload{
		RecordCount:      props.GetInt(PropRecordCount, DefaultRecordCount),
		OperationCount:   props.GetInt(PropOperationCount, DefaultOperationCount),
		ThreadCount:      props.GetInt(PropThreadCount, DefaultThreadCount),
		ReadProportion:   props.GetFloat64(PropReadProportion, DefaultReadProportion),
		UpdateProportion: props.GetFloat64(PropUpdateProportion, DefaultUpdateProportion),
		DeleteProportion: props.GetFloat64(PropDeleteProportion, DefaultDeleteProportion),
		KeyPrefix:        props.GetString(PropKeyPrefix, DefaultKeyPrefix),
		ValueSize:        props.GetInt(PropValueSize, DefaultValueSize),
		Target:           props.GetInt(PropTarget, DefaultTarget),
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate reports the first parameter that would make the run
// meaningless.
func (w *Workload) Validate() error {
	if w.RecordCount <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidWorkload, PropRecordCount, w.RecordCount)
	}

	if w.OperationCount <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidWorkload, PropOperationCount, w.OperationCount)
	}

	if w.ThreadCount <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidWorkload, PropThreadCount, w.ThreadCount)
	}

	if w.ValueSize <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidWorkload, PropValueSize, w.ValueSize)
	}

	if w.Target < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidWorkload, PropTarget, w.Target)
	}

	proportions := []struct {
		name  string
		value float64
	}{
		{name: PropReadProportion, value: w.ReadProportion},
		{name: PropUpdateProportion, value: w.UpdateProportion},
		{name: PropDeleteProportion, value: w.DeleteProportion},
	}

	for _, proportion := range proportions {
		if proportion.value < 0 || proportion.value > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v",
				ErrInvalidWorkload, proportion.name, proportion.value)
		}
	}

	sum := w.ReadProportion + w.UpdateProportion + w.DeleteProportion
	if math.Abs(sum-1) > proportionSumTolerance {
		return fmt.Errorf("%w: operation proportions must sum to 1, got %v", ErrInvalidWorkload, sum)
	}

	return nil
}

// keyName renders the key for record index n.
func (w *Workload) keyName(n int) string {
	return w.KeyPrefix + strconv.Itoa(n)
}

// valueFor renders the deterministic ValueSize-byte value for record
// index n. Re-running the same workload produces identical data, which
// also means updates rewrite the value the preload put there.
func (w *Workload) valueFor(n int) string {
	var b strings.Builder

	b.Grow(w.ValueSize + 16)

	unit := "value" + strconv.Itoa(n) + "."
	for b.Len() < w.ValueSize {
		b.WriteString(unit)
	}

	return b.String()[:w.ValueSize]
}
