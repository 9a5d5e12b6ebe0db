package game

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//go:embed assets/*.txt
var embeddedAssets embed.FS

var (
	ErrAssetMissing    = errors.New("asset missing")
	ErrAssetsNotLoaded = errors.New("assets not loaded")
)

type AssetState int

const (
	AssetsLoading AssetState = iota
	AssetsLoaded
	AssetsFailed
)

func (s AssetState) String() string {
	switch s {
	case AssetsLoading:
		return "loading"
	case AssetsLoaded:
		return "loaded"
	case AssetsFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Asset is a text sprite, stretched over its destination rectangle when drawn.
type Asset struct {
	Name  AssetName
	Lines []string
	Color string
}

// Sample maps a relative position in [0,1) to the sprite rune at that spot.
func (a *Asset) Sample(u, v float64) rune {
	if a == nil || len(a.Lines) == 0 {
		return ' '
	}
	row := clampIndex(int(v*float64(len(a.Lines))), len(a.Lines))
	line := []rune(a.Lines[row])
	if len(line) == 0 {
		return ' '
	}
	col := clampIndex(int(u*float64(len(line))), len(line))
	return line[col]
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

type AssetStore struct {
	mu     sync.RWMutex
	state  AssetState
	err    error
	assets map[AssetName]*Asset
}

func NewAssetStore() *AssetStore {
	return &AssetStore{
		state:  AssetsLoading,
		assets: make(map[AssetName]*Asset),
	}
}

// LoadEmbeddedAssets loads the sprites shipped with the binary.
func LoadEmbeddedAssets() *AssetStore {
	sub, err := fs.Sub(embeddedAssets, "assets")
	store := NewAssetStore()
	if err != nil {
		store.fail(err)
		return store
	}
	store.Load(sub)
	return store
}

// Load reads every required sprite from fsys as "<name>.txt". One bad sprite fails
// the whole store.
func (store *AssetStore) Load(fsys fs.FS) error {
	loaded := make(map[AssetName]*Asset, len(RequiredAssets))
	for _, name := range RequiredAssets {
		raw, err := fs.ReadFile(fsys, string(name)+".txt")
		if err != nil {
			return store.fail(fmt.Errorf("%w: %s: %v", ErrAssetMissing, name, err))
		}
		if strings.TrimSpace(string(raw)) == "" {
			return store.fail(fmt.Errorf("%w: %s is empty", ErrAssetMissing, name))
		}
		lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
		loaded[name] = &Asset{Name: name, Lines: lines, Color: AssetColors[name]}
	}

	store.mu.Lock()
	store.assets = loaded
	store.state = AssetsLoaded
	store.err = nil
	store.mu.Unlock()
	log.Debug("Assets loaded", "count", len(loaded))
	return nil
}

func (store *AssetStore) fail(err error) error {
	store.mu.Lock()
	store.state = AssetsFailed
	store.err = err
	store.mu.Unlock()
	log.Error("Failed to load assets", "error", err)
	return err
}

func (store *AssetStore) State() AssetState {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *AssetStore) Err() error {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.err
}

func (store *AssetStore) Get(name AssetName) *Asset {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.assets[name]
}
