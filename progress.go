package bench

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aristanetworks/goarista/monotime"
)

const emitInterval = 512 * 1024 // bytes

type Progress struct {
	Processed uint64        `json:"processed"` // total bytes scanned so far
	Delta     uint64        `json:"delta"`     // bytes scanned since last event
	Duration  time.Duration `json:"duration"`  // time in ns since last event
}

// BPS returns the scan speed in bytes/s.
func (ev Progress) BPS() float64 {
	return (float64(ev.Delta) / float64(ev.Duration)) * float64(time.Second)
}

func mononow() time.Duration {
	return time.Duration(monotime.Now())
}

// ScanEnv emits JSON progress events while result files are scanned.
// It is safe for concurrent use.
type ScanEnv struct {
	name string
	size uint64 // expected total, zero if unknown
	out  *json.Encoder
	log  *slog.Logger

	mu                       sync.Mutex
	lastTime                 time.Duration
	processed, lastProcessed uint64
	lastPercent              int
	interval                 uint64
}

// NewScanEnv creates an environment writing progress events to output.
// If size is non-zero, percentage progress is logged as well.
func NewScanEnv(output io.Writer, name string, size uint64, log *slog.Logger) *ScanEnv {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ScanEnv{
		name:     name,
		size:     size,
		out:      json.NewEncoder(output),
		log:      log,
		interval: emitInterval,
		lastTime: mononow(),
	}
}

// Add records that n more bytes have been scanned.
func (env *ScanEnv) Add(n int) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.processed += uint64(n)
	env.emit(mononow(), false)
}

// Finish emits an event for any bytes not yet reported.
func (env *ScanEnv) Finish() {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.emit(mononow(), true)
}

func (env *ScanEnv) emit(now time.Duration, force bool) {
	dp := env.processed - env.lastProcessed
	if dp == 0 || (dp < env.interval && !force) {
		return
	}
	p := Progress{Processed: env.processed, Delta: dp, Duration: now - env.lastTime}
	if err := env.out.Encode(&p); err != nil {
		env.log.Warn("can't write progress event", "err", err)
	}
	env.logPercentage()
	env.lastTime = now
	env.lastProcessed = env.processed
}

func (env *ScanEnv) logPercentage() {
	if env.size == 0 {
		return
	}
	pct := int((float64(env.processed) / float64(env.size)) * 100)
	if pct > env.lastPercent {
		env.log.Info("scanning", "name", env.name, "percent", pct)
		env.lastPercent = pct
	}
}

// ReadProgress reads JSON progress events in a file.
func ReadProgress(file string) ([]Progress, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return DecodeProgress(fd)
}

// DecodeProgress reads JSON progress events from r.
func DecodeProgress(r io.Reader) ([]Progress, error) {
	var pp []Progress
	dec := json.NewDecoder(r)
	for {
		var p Progress
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			return pp, err
		}
		pp = append(pp, p)
	}
	return pp, nil
}
