//go:build unix

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/goze/editor"
	"github.com/dshills/goze/fileio"
	"github.com/dshills/goze/term"
	"golang.org/x/sys/unix"
)

// TestEditSessionRoundTrip drives the full load -> edit -> save -> reload
// cycle on a real file.
func TestEditSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	buf, err := fileio.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer buf.Close()

	ctx := editor.New(buf)
	ctx.MoveBufferEnd()
	if err := ctx.Insert("line three\n"); err != nil {
		t.Fatal(err)
	}
	if !ctx.Modified() {
		t.Error("context should be modified before save")
	}

	if err := fileio.Save(buf, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ctx.MarkSaved()
	if ctx.Modified() {
		t.Error("context should be clean after save")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte("line one\nline two\nline three\n")
	if !bytes.Equal(got, want) {
		t.Errorf("file = %q, want %q", got, want)
	}
}

// TestMmapSurvivesSaveOverOriginal checks the mmap fast path keeps
// serving the old content while the file is replaced underneath it.
func TestMmapSurvivesSaveOverOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	content := bytes.Repeat([]byte("0123456789abcde\n"), 4096)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	buf, err := fileio.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer buf.Close()

	if err := fileio.Save(buf, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The buffer still reads cleanly from the (now replaced) mapping.
	got, err := buf.GetRange(0, buf.Len())
	if err != nil {
		t.Fatalf("GetRange after save: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("mapped content changed after save-over")
	}
}

// TestSignalSetsFlagAndWakesPoller sends a real SIGWINCH and checks it
// both sets the resize flag and interrupts a blocked Wait.
func TestSignalSetsFlagAndWakesPoller(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	trm := term.NewTerminal(term.WithFiles(r, w))
	p, err := term.NewPoller(trm.InputFd())
	if err != nil {
		t.Fatalf("NewPoller: %v", err)
	}
	defer p.Close()
	trm.InstallSignalHandlers(p.Wake)
	defer trm.Restore()

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = unix.Kill(unix.Getpid(), unix.SIGWINCH)
	}()

	res, err := p.Wait(2 * time.Second)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if res != term.Signal {
		t.Fatalf("Wait = %v, want Signal", res)
	}

	// The watcher may still be between Wake and Store; poll briefly.
	deadline := time.Now().Add(time.Second)
	for !trm.ConsumeResize() {
		if time.Now().After(deadline) {
			t.Fatal("resize flag never set")
		}
		time.Sleep(time.Millisecond)
	}
}
