// Package frametrace records per-frame timings and key events of a window
// into a compact binary stream.
//
// Stream layout (little endian):
//   - header: magic, version, length of the kind table
//   - kind table: JSON object mapping kind number to name
//   - records: 4 bytes kind, 4 bytes argument, 8 bytes duration in ns
package frametrace

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const (
	Magic   uint32 = 0x52544246 // "FBTR"
	Version uint32 = 1
)

var ErrClosed = errors.New("frametrace: closed")

type header struct {
	Magic       uint32
	Version     uint32
	KindsLength uint32
}

// Kind identifies what a record measures.
type Kind uint32

const (
	// KindFrame is a whole Update call. Arg is the frame number.
	KindFrame Kind = iota + 1
	// KindPresent is the native present + event pump. Arg is the frame number.
	KindPresent
	// KindKeyDown is a key going down. Arg is the key, the duration is the
	// offset from the start of the trace.
	KindKeyDown
	// KindKeyUp is a key being released. Same layout as KindKeyDown.
	KindKeyUp
)

var kindNames = map[Kind]string{
	KindFrame:   "frame",
	KindPresent: "present",
	KindKeyDown: "keydown",
	KindKeyUp:   "keyup",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind" + strconv.Itoa(int(k))
}

type record struct {
	Kind     Kind
	Arg      uint32
	Duration int64
}

var recordSize = binary.Size(record{})

// Entry is one decoded record.
type Entry struct {
	Kind     Kind
	Arg      uint32
	Duration time.Duration
}

// Recorder writes records on a background goroutine. Record never blocks:
// when the queue is full the record is dropped and counted.
type Recorder struct {
	start   time.Time
	records chan record
	done    chan error
	closed  atomic.Bool
	dropped atomic.Uint64

	// mu keeps Record from sending on a closed channel.
	mu sync.RWMutex
}

// Open writes the stream header to w and starts recording.
func Open(w io.Writer) (*Recorder, error) {
	names := make(map[string]string, len(kindNames))
	for k, n := range kindNames {
		names[strconv.Itoa(int(k))] = n
	}
	kinds, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("frametrace: marshal kinds: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, header{
		Magic:       Magic,
		Version:     Version,
		KindsLength: uint32(len(kinds)),
	}); err != nil {
		return nil, fmt.Errorf("frametrace: write header: %w", err)
	}
	if _, err := w.Write(kinds); err != nil {
		return nil, fmt.Errorf("frametrace: write kinds: %w", err)
	}

	r := &Recorder{
		start:   time.Now(),
		records: make(chan record, 4096),
		done:    make(chan error, 1),
	}
	go r.run(w)
	return r, nil
}

func (r *Recorder) run(w io.Writer) {
	var buf [4096]byte
	off := 0

	for rec := range r.records {
		if off+recordSize > len(buf) {
			if _, err := w.Write(buf[:off]); err != nil {
				r.done <- err
				// Keep draining so Close does not hang.
				for range r.records {
				}
				return
			}
			off = 0
		}
		binary.LittleEndian.PutUint32(buf[off:], uint32(rec.Kind))
		binary.LittleEndian.PutUint32(buf[off+4:], rec.Arg)
		binary.LittleEndian.PutUint64(buf[off+8:], uint64(rec.Duration))
		off += recordSize
	}

	if off > 0 {
		if _, err := w.Write(buf[:off]); err != nil {
			r.done <- err
			return
		}
	}
	r.done <- nil
}

// Record queues one record. It is safe for concurrent use and a no-op on a
// nil or closed Recorder.
func (r *Recorder) Record(kind Kind, arg uint32, d time.Duration) {
	if r == nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed.Load() {
		return
	}
	select {
	case r.records <- record{Kind: kind, Arg: arg, Duration: d.Nanoseconds()}:
	default:
		r.dropped.Add(1)
	}
}

// Event records an instantaneous event stamped relative to the start of the
// trace.
func (r *Recorder) Event(kind Kind, arg uint32) {
	if r == nil {
		return
	}
	r.Record(kind, arg, time.Since(r.start))
}

// Dropped returns how many records were discarded because the writer fell
// behind.
func (r *Recorder) Dropped() uint64 {
	if r == nil {
		return 0
	}
	return r.dropped.Load()
}

// Close flushes queued records and stops the writer goroutine.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if !r.closed.CompareAndSwap(false, true) {
		r.mu.Unlock()
		return ErrClosed
	}
	close(r.records)
	r.mu.Unlock()

	if err := <-r.done; err != nil {
		return fmt.Errorf("frametrace: write: %w", err)
	}
	return nil
}

// ReadAll decodes a stream produced by a Recorder and calls fn for every
// record in order.
func ReadAll(r io.Reader, fn func(Entry) error) error {
	buf := bufio.NewReaderSize(r, 4096)

	var hdr header
	if err := binary.Read(buf, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("frametrace: read header: %w", err)
	}
	if hdr.Magic != Magic {
		return fmt.Errorf("frametrace: invalid magic %#x", hdr.Magic)
	}
	if hdr.Version != Version {
		return fmt.Errorf("frametrace: unsupported version %d", hdr.Version)
	}

	var names map[string]string
	dec := json.NewDecoder(io.LimitReader(buf, int64(hdr.KindsLength)))
	if err := dec.Decode(&names); err != nil {
		return fmt.Errorf("frametrace: read kinds: %w", err)
	}
	known := make(map[Kind]bool, len(names))
	for id := range names {
		n, err := strconv.Atoi(id)
		if err != nil {
			return fmt.Errorf("frametrace: bad kind id %q", id)
		}
		known[Kind(n)] = true
	}

	for {
		var rec record
		if err := binary.Read(buf, binary.LittleEndian, &rec); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("frametrace: read record: %w", err)
		}
		if !known[rec.Kind] {
			return fmt.Errorf("frametrace: unknown kind %d", rec.Kind)
		}
		if err := fn(Entry{Kind: rec.Kind, Arg: rec.Arg, Duration: time.Duration(rec.Duration)}); err != nil {
			return err
		}
	}
}
