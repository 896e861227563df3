package emit

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/projectdiscovery/utils/dedupe"
)

// DedupingWriter wraps an io.Writer and drops byte-identical blocks
// (blank-line-separated chunks, matching Emit's block separator) —
// the autogen expander can synthesize the same price-tier block twice
// across adjacent rules, and the native filter has no way to express
// "this block is a duplicate, skip it" itself. The unit of duplication
// here is a whole rendered block rather than an individual line.
type DedupingWriter struct {
	writer  io.Writer
	inputCh chan string
	wg      sync.WaitGroup
	count   int
	countMu sync.Mutex
	closed  bool
	buffer  []byte
}

// NewDedupingWriter creates a DedupingWriter writing unique blocks to w.
func NewDedupingWriter(w io.Writer) *DedupingWriter {
	inputCh := make(chan string, 100)
	dw := &DedupingWriter{
		writer:  w,
		inputCh: inputCh,
		buffer:  make([]byte, 0),
	}

	dw.wg.Add(1)
	go dw.processDeduped(inputCh)

	return dw
}

func (dw *DedupingWriter) processDeduped(inputCh chan string) {
	defer dw.wg.Done()

	d := dedupe.NewDedupe(inputCh, 1024*1024)
	d.Drain()
	outputCh := d.GetResults()

	for value := range outputCh {
		if value == "" {
			continue
		}
		if _, err := dw.writer.Write([]byte(value + "\n\n")); err != nil {
			continue
		}
		dw.countMu.Lock()
		dw.count++
		dw.countMu.Unlock()
	}
}

// Write implements io.Writer, splitting p into blocks on blank lines.
func (dw *DedupingWriter) Write(p []byte) (int, error) {
	if dw.closed {
		return 0, io.ErrClosedPipe
	}

	originalLen := len(p)
	dw.buffer = append(dw.buffer, p...)

	for {
		idx := bytes.Index(dw.buffer, []byte("\n\n"))
		if idx == -1 {
			break
		}
		block := strings.TrimRight(string(dw.buffer[:idx]), "\n")
		dw.inputCh <- block
		dw.buffer = dw.buffer[idx+2:]
	}

	return originalLen, nil
}

// Close flushes any remaining buffered block and closes the writer.
func (dw *DedupingWriter) Close() error {
	if dw.closed {
		return nil
	}
	dw.closed = true

	if block := strings.TrimSpace(string(dw.buffer)); block != "" {
		dw.inputCh <- block
	}

	close(dw.inputCh)
	dw.wg.Wait()

	return nil
}

// Count returns the number of unique blocks written.
func (dw *DedupingWriter) Count() int {
	dw.countMu.Lock()
	defer dw.countMu.Unlock()
	return dw.count
}
