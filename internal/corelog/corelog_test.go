package corelog

import (
	"bytes"
	"log"
	"os"
	"testing"
)

func TestTracefDisabled(t *testing.T) {
	Enabled = false
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Tracef("this should not appear")

	if buf.Len() > 0 {
		t.Errorf("Tracef output when disabled: %s", buf.String())
	}
}

func TestTracefEnabled(t *testing.T) {
	Enabled = true
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Tracef("test message %d", 42)

	if !bytes.Contains(buf.Bytes(), []byte("TRACE: test message 42")) {
		t.Errorf("Expected trace output, got: %s", buf.String())
	}
	Enabled = false
}
