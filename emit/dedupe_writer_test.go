package emit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDedupingWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	dw := NewDedupingWriter(buf)

	blockA := "Show\n\tItemLevel >= 80\n"
	blockB := "Show\n\tItemLevel >= 60\n"

	dw.Write([]byte(blockA + "\n"))
	dw.Write([]byte(blockB + "\n"))
	dw.Write([]byte(blockA + "\n")) // duplicate of blockA

	if err := dw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if got := dw.Count(); got != 2 {
		t.Errorf("expected 2 unique blocks, got %d", got)
	}

	output := buf.String()
	if !strings.Contains(output, strings.TrimRight(blockA, "\n")) {
		t.Errorf("expected output to contain blockA, got %q", output)
	}
	if !strings.Contains(output, strings.TrimRight(blockB, "\n")) {
		t.Errorf("expected output to contain blockB, got %q", output)
	}
}

func TestDedupingWriterNoDuplicates(t *testing.T) {
	buf := &bytes.Buffer{}
	dw := NewDedupingWriter(buf)

	dw.Write([]byte("Hide\n\tClass \"Currency\"\n\n"))
	dw.Write([]byte("Hide\n\tClass \"Gems\"\n\n"))

	if err := dw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if got := dw.Count(); got != 2 {
		t.Errorf("expected 2 unique blocks, got %d", got)
	}
}
