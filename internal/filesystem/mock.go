package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string]*MockFile
	currentDir string
	failures   map[string]error // key: op + " " + clean path
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool

	// Synced is true when every write to the file has been followed by Sync.
	Synced bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockHandle implements File on top of a MockFile
type mockHandle struct {
	mfs    *MockFileSystem
	path   string
	file   *MockFile
	offset int
	append bool
	closed bool
}

func (h *mockHandle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, &fs.PathError{Op: "write", Path: h.path, Err: fs.ErrClosed}
	}
	if err := h.mfs.failure("write", h.path); err != nil {
		return 0, &fs.PathError{Op: "write", Path: h.path, Err: err}
	}

	if h.append {
		h.offset = len(h.file.Content)
	}
	end := h.offset + len(p)
	if end > len(h.file.Content) {
		grown := make([]byte, end)
		copy(grown, h.file.Content)
		h.file.Content = grown
	}
	copy(h.file.Content[h.offset:end], p)
	h.offset = end
	h.file.Synced = false
	h.file.ModTime = time.Now()
	return len(p), nil
}

func (h *mockHandle) Truncate(size int64) error {
	if h.closed {
		return &fs.PathError{Op: "truncate", Path: h.path, Err: fs.ErrClosed}
	}
	if err := h.mfs.failure("truncate", h.path); err != nil {
		return &fs.PathError{Op: "truncate", Path: h.path, Err: err}
	}
	if size < 0 {
		return &fs.PathError{Op: "truncate", Path: h.path, Err: fs.ErrInvalid}
	}

	n := int(size)
	if n <= len(h.file.Content) {
		h.file.Content = h.file.Content[:n]
	} else {
		grown := make([]byte, n)
		copy(grown, h.file.Content)
		h.file.Content = grown
	}
	h.file.Synced = false
	return nil
}

func (h *mockHandle) Sync() error {
	if h.closed {
		return &fs.PathError{Op: "sync", Path: h.path, Err: fs.ErrClosed}
	}
	if err := h.mfs.failure("sync", h.path); err != nil {
		return &fs.PathError{Op: "sync", Path: h.path, Err: err}
	}
	h.file.Synced = true
	return nil
}

func (h *mockHandle) Close() error {
	if h.closed {
		return &fs.PathError{Op: "close", Path: h.path, Err: fs.ErrClosed}
	}
	h.closed = true
	if err := h.mfs.failure("close", h.path); err != nil {
		return &fs.PathError{Op: "close", Path: h.path, Err: err}
	}
	return nil
}

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
		failures:   make(map[string]error),
	}
	mfs.AddDir(mfs.currentDir)
	return mfs
}

// AddFile adds a file to the mock filesystem
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
		IsDir:   false,
		Synced:  true,
	}

	mfs.addParents(cleanPath)
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}

	mfs.addParents(cleanPath)
}

// Ensure parent directories exist
func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.AddDir(dir)
		}
		dir = filepath.Dir(dir)
	}
}

// InjectError makes the next and every later call of op on path fail with err.
// Supported ops: open, write, truncate, sync, close, mkdir, stat.
func (mfs *MockFileSystem) InjectError(op, path string, err error) {
	mfs.failures[op+" "+filepath.Clean(path)] = err
}

func (mfs *MockFileSystem) failure(op, path string) error {
	return mfs.failures[op+" "+filepath.Clean(path)]
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, fs.ErrNotExist
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)

	if err := mfs.requireParent(cleanPath, "open"); err != nil {
		return err
	}

	mfs.files[cleanPath] = &MockFile{
		Content: data,
		Mode:    perm,
		ModTime: time.Now(),
		IsDir:   false,
		Synced:  true,
	}
	return nil
}

// OpenFile supports the O_CREATE, O_EXCL, O_TRUNC and O_APPEND flags.
func (mfs *MockFileSystem) OpenFile(path string, flag int, perm fs.FileMode) (File, error) {
	cleanPath := filepath.Clean(path)
	if err := mfs.failure("open", cleanPath); err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}

	file, exists := mfs.files[cleanPath]
	switch {
	case exists && file.IsDir:
		return nil, &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	case exists && flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	case !exists && flag&os.O_CREATE == 0:
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	case !exists:
		if err := mfs.requireParent(cleanPath, "open"); err != nil {
			return nil, err
		}
		file = &MockFile{Mode: perm, ModTime: time.Now(), Synced: true}
		mfs.files[cleanPath] = file
	}

	if flag&os.O_TRUNC != 0 {
		file.Content = nil
		file.Synced = false
	}

	return &mockHandle{
		mfs:    mfs,
		path:   cleanPath,
		file:   file,
		append: flag&os.O_APPEND != 0,
	}, nil
}

func (mfs *MockFileSystem) Mkdir(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	if err := mfs.failure("mkdir", cleanPath); err != nil {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	if _, exists := mfs.files[cleanPath]; exists {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	if err := mfs.requireParent(cleanPath, "mkdir"); err != nil {
		return err
	}

	mfs.files[cleanPath] = &MockFile{
		Mode:    perm | fs.ModeDir,
		ModTime: time.Now(),
		IsDir:   true,
	}
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	parts := strings.Split(cleanPath, string(filepath.Separator))

	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if current == "" {
			current = string(filepath.Separator) + part
		} else {
			current = filepath.Join(current, part)
		}

		if _, exists := mfs.files[current]; !exists {
			mfs.files[current] = &MockFile{
				Mode:    perm | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
	}
	return nil
}

func (mfs *MockFileSystem) requireParent(cleanPath, op string) error {
	dir := filepath.Dir(cleanPath)
	if dir == "." || dir == "/" {
		return nil
	}
	parent, exists := mfs.files[dir]
	if !exists {
		return &fs.PathError{Op: op, Path: cleanPath, Err: fs.ErrNotExist}
	}
	if !parent.IsDir {
		return &fs.PathError{Op: op, Path: cleanPath, Err: errors.New("not a directory")}
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := filepath.Clean(path)
	if err := mfs.failure("stat", cleanPath); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}

	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
	mfs.AddDir(dir)
}

// GetFiles returns all files in the mock filesystem (for debugging)
func (mfs *MockFileSystem) GetFiles() map[string]*MockFile {
	return mfs.files
}

// FilesUnder returns the regular files below root keyed by their path
// relative to root.
func (mfs *MockFileSystem) FilesUnder(root string) map[string][]byte {
	cleanRoot := filepath.Clean(root)
	out := make(map[string][]byte)
	for p, f := range mfs.files {
		if f.IsDir || !strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			continue
		}
		rel, err := filepath.Rel(cleanRoot, p)
		if err != nil {
			continue
		}
		out[rel] = f.Content
	}
	return out
}
