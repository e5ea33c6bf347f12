package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// KV is the single-slot storage port behind a watchlist. Get reports
// ok=false when the key has never been set.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Clear(key string) error
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

var _ KV = (*MemoryKV)(nil)

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (kv *MemoryKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *MemoryKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return nil
}

func (kv *MemoryKV) Clear(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, key)
	return nil
}

// FileKV stores every key in one JSON object file. Writes replace the file
// by rename, so readers never see a partial document. Concurrent writers
// from other processes are not coordinated: the last rename wins.
type FileKV struct {
	Path string
}

var _ KV = (*FileKV)(nil)

func NewFileKV(path string) *FileKV {
	return &FileKV{Path: path}
}

func (kv *FileKV) load() (map[string]string, error) {
	data, err := os.ReadFile(kv.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", kv.Path, err)
	}
	m := map[string]string{}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", kv.Path, err)
	}
	return m, nil
}

func (kv *FileKV) store(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", kv.Path, err)
	}
	if err := os.MkdirAll(filepath.Dir(kv.Path), 0755); err != nil {
		return fmt.Errorf("creating parent dir: %w", err)
	}
	tmp := kv.Path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, kv.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", kv.Path, err)
	}
	return nil
}

func (kv *FileKV) Get(key string) (string, bool, error) {
	m, err := kv.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set rewrites the file with key updated. A corrupt file is replaced.
func (kv *FileKV) Set(key, value string) error {
	m, err := kv.load()
	if err != nil {
		m = map[string]string{}
	}
	m[key] = value
	return kv.store(m)
}

func (kv *FileKV) Clear(key string) error {
	m, err := kv.load()
	if err != nil {
		m = map[string]string{}
	}
	if _, ok := m[key]; !ok && err == nil {
		return nil
	}
	delete(m, key)
	return kv.store(m)
}
