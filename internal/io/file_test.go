package ioutils

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "adele.json")

	if err := WriteFile(context.Background(), path, []byte("{}\n")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := WriteFile(context.Background(), path, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("WriteFile() overwrite error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("content = %q", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected no temporary files left, found %d entries", len(entries))
	}
}

func TestWriteFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "x.json")
	if err := WriteFile(ctx, path, nil); err == nil {
		t.Error("expected error for cancelled context")
	}
	if FileExists(path) {
		t.Error("file should not be written")
	}
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "25.zip")
	writeZip(t, archive, map[string]string{
		"01 Hello.mp3":        "a",
		"02 Send My Love.MP3": "b",
		"cover.jpg":           "c",
		"disc2/03 Water.mp3":  "d",
	})

	dest := filepath.Join(dir, "25")
	files, err := ExtractZip(context.Background(), archive, dest)
	if err != nil {
		t.Fatalf("ExtractZip() error = %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("extracted %d files, want 4: %v", len(files), files)
	}

	data, err := os.ReadFile(filepath.Join(dest, "disc2", "03 Water.mp3"))
	if err != nil || string(data) != "d" {
		t.Errorf("nested entry = %q, %v", data, err)
	}

	mp3s := FilterExt(files, ".mp3")
	if len(mp3s) != 3 {
		t.Errorf("FilterExt() = %v, want 3 mp3 files", mp3s)
	}
}

func TestExtractZip_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{"../../evil.mp3": "x"})

	if _, err := ExtractZip(context.Background(), archive, filepath.Join(dir, "out")); err == nil {
		t.Fatal("expected error for entry outside destination")
	}
	if FileExists(filepath.Join(dir, "evil.mp3")) {
		t.Error("entry escaped the destination")
	}
}

func TestExtractZip_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ExtractZip(context.Background(), path, t.TempDir()); err == nil {
		t.Error("expected error for invalid archive")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp3")
	os.WriteFile(file, nil, 0644)

	if !FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}
