package app

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func stubClipboard(t *testing.T, system, osc func(string) error) {
	t.Helper()
	origWriteAll := clipboardWriteAll
	origWriteOSC52 := clipboardWriteOSC52
	t.Cleanup(func() {
		clipboardWriteAll = origWriteAll
		clipboardWriteOSC52 = origWriteOSC52
	})
	clipboardWriteAll = system
	clipboardWriteOSC52 = osc
}

func TestCopyTextToClipboardUsesSystemBackend(t *testing.T) {
	fallbackCalled := false
	stubClipboard(t, func(string) error { return nil }, func(string) error {
		fallbackCalled = true
		return nil
	})

	method, err := copyTextToClipboard("hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if method != clipboardMethodSystem {
		t.Fatalf("expected system method, got %v", method)
	}
	if fallbackCalled {
		t.Fatalf("expected no OSC52 fallback call")
	}
}

func TestCopyTextToClipboardFallsBackToOSC52(t *testing.T) {
	var copied string
	stubClipboard(t, func(string) error { return errors.New("exit status 1") }, func(text string) error {
		copied = text
		return nil
	})

	method, err := copyTextToClipboard("hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if method != clipboardMethodOSC52 {
		t.Fatalf("expected OSC52 method, got %v", method)
	}
	if copied != "hello" {
		t.Fatalf("expected OSC52 fallback to receive text, got %q", copied)
	}
}

func TestCopyTextToClipboardHelpfulErrorWhenDisplayMissing(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	stubClipboard(t,
		func(string) error { return errors.New("exit status 1") },
		func(string) error { return errors.New("open /dev/tty: no such device") },
	)

	_, err := copyTextToClipboard("hello")
	if err == nil {
		t.Fatalf("expected copy error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "no GUI clipboard available") {
		t.Fatalf("expected no-display guidance, got %q", msg)
	}
	if !strings.Contains(msg, "OSC52 fallback failed") {
		t.Fatalf("expected OSC52 fallback details, got %q", msg)
	}
}

func TestWriteOSC52ClipboardReportsTTYError(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("SIDEBAR_DISABLE_OSC52", "")
	origOpenTTY := openTTYForWrite
	t.Cleanup(func() { openTTYForWrite = origOpenTTY })
	openTTYForWrite = func() (io.WriteCloser, error) {
		return nil, os.ErrNotExist
	}

	err := writeOSC52Clipboard("hello")
	if err == nil {
		t.Fatalf("expected writeOSC52Clipboard to fail without a tty")
	}
	if !strings.Contains(err.Error(), "open /dev/tty") {
		t.Fatalf("expected /dev/tty error, got %q", err.Error())
	}
}

func TestWriteOSC52ClipboardDisabledByEnv(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("SIDEBAR_DISABLE_OSC52", "yes")
	if err := writeOSC52Clipboard("hello"); err == nil {
		t.Fatalf("expected OSC52 to be disabled")
	}
}

func TestWriteOSC52SequenceWrapsForScreen(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "screen-256color")
	var plain, screen bytes.Buffer
	if err := writeOSC52Sequence(&screen, "hello"); err != nil {
		t.Fatalf("writeOSC52Sequence: %v", err)
	}
	t.Setenv("TERM", "xterm-256color")
	if err := writeOSC52Sequence(&plain, "hello"); err != nil {
		t.Fatalf("writeOSC52Sequence: %v", err)
	}
	if plain.Len() == 0 || screen.String() == plain.String() {
		t.Fatalf("expected screen sequence to differ from plain, got %q", screen.String())
	}
}
