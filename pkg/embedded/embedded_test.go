package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/carousel.yaml":  {Data: []byte("speed: 50\n")},
		"data/showcase.yaml":  {Data: []byte("locale: en\n")},
		"data/extra/notes.md": {Data: []byte("# notes\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false for a nil FS")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	Init(nil)

	_, err := ReadFile("data/carousel.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain", "data/carousel.yaml", "speed: 50\n", false},
		{"dot prefix", "./data/showcase.yaml", "locale: en\n", false},
		{"nested", "data/extra/notes.md", "# notes\n", false},
		{"missing", "data/missing.yaml", "", true},
		{"bad prefix", "assets/logo.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%s) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExistsAndGlob(t *testing.T) {
	Init(testFS())

	if !Exists("data/carousel.yaml") {
		t.Error("data/carousel.yaml should exist")
	}
	if Exists("data/nope.yaml") {
		t.Error("data/nope.yaml should not exist")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 yaml files, got %v", matches)
	}
}

func TestReadFileOrDisk(t *testing.T) {
	Init(testFS())

	// 磁盘上不存在时回退到嵌入资源
	data, source, err := ReadFileOrDisk("data/carousel.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "embedded" || string(data) != "speed: 50\n" {
		t.Errorf("got %q from %s, want embedded content", data, source)
	}

	// 磁盘文件优先
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("speed: 80\n"), 0644); err != nil {
		t.Fatal(err)
	}
	data, source, err = ReadFileOrDisk(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "disk" || string(data) != "speed: 80\n" {
		t.Errorf("got %q from %s, want disk content", data, source)
	}

	if _, _, err := ReadFileOrDisk("data/none.yaml"); err == nil {
		t.Error("expected error when resource is missing everywhere")
	}
}
