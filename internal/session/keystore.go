package session

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// SecureStorage persists small secrets such as the bearer token.
type SecureStorage interface {
	Set(key, value string) error
	Get(key string) (string, bool, error)
	Delete(key string) error
}

const (
	keyFile    = "secure.key"
	sealedFile = "secure.json"
)

// FileKeystore seals each value with XChaCha20-Poly1305 under a random key
// kept beside the data file. Files are readable by the owner only.
type FileKeystore struct {
	dir string

	mu  sync.Mutex
	key []byte
}

func NewFileKeystore(dir string) (*FileKeystore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	ks := &FileKeystore{dir: dir}
	key, err := ks.loadKey()
	if err != nil {
		return nil, err
	}
	ks.key = key
	return ks, nil
}

func (k *FileKeystore) loadKey() ([]byte, error) {
	path := filepath.Join(k.dir, keyFile)
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("keystore key %s has wrong size %d", path, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read keystore key: %w", err)
	}
	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate keystore key: %w", err)
	}
	if err := writeAtomic(path, key); err != nil {
		return nil, fmt.Errorf("write keystore key: %w", err)
	}
	return key, nil
}

func (k *FileKeystore) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	entries, err := k.read()
	if err != nil {
		return err
	}
	sealed, err := k.seal(key, value)
	if err != nil {
		return err
	}
	entries[key] = sealed
	return k.write(entries)
}

func (k *FileKeystore) Get(key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entries, err := k.read()
	if err != nil {
		return "", false, err
	}
	sealed, ok := entries[key]
	if !ok {
		return "", false, nil
	}
	value, err := k.open(key, sealed)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (k *FileKeystore) Delete(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	entries, err := k.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return k.write(entries)
}

func (k *FileKeystore) seal(name, value string) (string, error) {
	aead, err := chacha20poly1305.NewX(k.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	out := aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.StdEncoding.EncodeToString(out), nil
}

func (k *FileKeystore) open(name, sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	aead, err := chacha20poly1305.NewX(k.key)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", fmt.Errorf("sealed %s is truncated", name)
	}
	plain, err := aead.Open(nil, raw[:aead.NonceSize()], raw[aead.NonceSize():], []byte(name))
	if err != nil {
		return "", fmt.Errorf("unseal %s: %w", name, err)
	}
	return string(plain), nil
}

func (k *FileKeystore) read() (map[string]string, error) {
	entries := map[string]string{}
	b, err := os.ReadFile(filepath.Join(k.dir, sealedFile))
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse keystore: %w", err)
	}
	return entries, nil
}

func (k *FileKeystore) write(entries map[string]string) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(k.dir, sealedFile), b); err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// MemoryKeystore keeps secrets for the life of the process.
type MemoryKeystore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryKeystore() *MemoryKeystore {
	return &MemoryKeystore{values: map[string]string{}}
}

func (m *MemoryKeystore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKeystore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKeystore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
