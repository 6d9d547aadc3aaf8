package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/birdsong/pkg/config"
	"github.com/decker502/birdsong/pkg/embedded"
	"github.com/decker502/birdsong/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinFontPrefix marks font paths that resolve to the Go fonts bundled
// with golang.org/x/image instead of a file.
const BuiltinFontPrefix = "builtin:"

var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gomono":    gomono.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
}

// AssetState describes where an asset is in its load lifecycle.
type AssetState int

const (
	AssetPending AssetState = iota
	AssetReady
	AssetFailed
)

// AssetKind is derived from the file extension of the requested path.
type AssetKind int

const (
	AssetKindUnknown AssetKind = iota
	AssetKindImage
	AssetKindFont
	AssetKindSound
)

// Asset is the handle returned by ResourceManager.Load.
//
// A handle starts pending and becomes ready (or failed) when the manager
// pumps its queue. The dialogue runtime only stores handles; the renderer
// and audio manager look at the state every time they use one.
type Asset struct {
	path  string
	kind  AssetKind
	state AssetState
	err   error

	image      *ebiten.Image
	fontSource *text.GoTextFaceSource
	pcm        []byte // decoded 16-bit stereo at the audio context's sample rate
}

// Path implements types.Handle.
func (a *Asset) Path() string { return a.path }

// Ready implements types.Handle.
func (a *Asset) Ready() bool { return a.state == AssetReady }

// State returns the load state.
func (a *Asset) State() AssetState { return a.state }

// Kind returns the asset kind.
func (a *Asset) Kind() AssetKind { return a.kind }

// Err returns the load error of a failed asset.
func (a *Asset) Err() error { return a.err }

type faceKey struct {
	path string
	size float64
}

// ResourceManager is responsible for centralized management of dialogue assets.
// It hands out handles immediately and resolves them a few at a time from the
// game loop, so loading a script never stalls a frame.
//
// The ResourceManager implements the following key features:
//   - Image loading (PNG and JPEG)
//   - Font loading (TTF/OTF files and the builtin Go fonts)
//   - Voice cue loading (OGG Vorbis, MP3 and WAV), decoded once into memory
//   - Lookup in the embedded filesystem before the OS filesystem
//
// Thread Safety Note:
// This implementation is NOT thread-safe. Load, Update and the getters must be
// called from the game loop goroutine.
//
// Usage:
//
//	audioContext := audio.NewContext(config.AudioSampleRate)
//	rm := NewResourceManager(audioContext)
//	h := rm.Load("images/cursor.png")
//	// once per frame:
//	rm.Update()
type ResourceManager struct {
	assets        map[string]*Asset            // Every requested asset: path -> handle
	pending       []*Asset                     // Assets waiting to be resolved, in request order
	audioContext  *audio.Context               // Global audio context, may be nil when audio is disabled
	fontFaceCache map[faceKey]*text.GoTextFace // Cache for Ebitengine v2 text faces

	baseDir  string // Directory that relative script paths are resolved against
	perFrame int    // Maximum number of assets resolved by one Update call
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// The audioContext parameter is used to decode voice cues. It may be nil, in
// which case every sound asset fails to load and voice playback is silent.
//
// Parameters:
//   - audioContext: The global audio context used for decoding audio files.
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
//
// Example:
//
//	audioContext := audio.NewContext(config.AudioSampleRate)
//	resourceManager := NewResourceManager(audioContext)
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		assets:        make(map[string]*Asset),
		pending:       make([]*Asset, 0),
		audioContext:  audioContext,
		fontFaceCache: make(map[faceKey]*text.GoTextFace),
		perFrame:      config.AssetsPerFrame,
	}
}

// SetBaseDir sets the directory that relative asset paths are looked up in
// when they are not found in the embedded filesystem. Usually the directory
// of the script file.
func (rm *ResourceManager) SetBaseDir(dir string) {
	rm.baseDir = dir
}

// SetAssetsPerFrame changes how many pending assets one Update call resolves.
// Values below 1 are treated as 1.
func (rm *ResourceManager) SetAssetsPerFrame(n int) {
	if n < 1 {
		n = 1
	}
	rm.perFrame = n
}

// Load returns the handle for path, queueing it for loading on first request.
// It never blocks. Requesting the same path twice returns the same handle.
//
// Parameters:
//   - path: Asset path as written in a script (e.g., "images/forest.png" or "builtin:gomono").
//
// Returns:
//   - The asset handle. It is pending until a later Update resolves it.
func (rm *ResourceManager) Load(path string) types.Handle {
	return rm.request(path)
}

func (rm *ResourceManager) request(path string) *Asset {
	if a, exists := rm.assets[path]; exists {
		return a
	}

	a := &Asset{path: path, kind: kindOf(path), state: AssetPending}
	rm.assets[path] = a
	rm.pending = append(rm.pending, a)
	return a
}

// Update resolves up to the per-frame limit of pending assets.
// Call it once per frame from the game loop.
//
// Returns:
//   - The number of assets that left the pending state.
func (rm *ResourceManager) Update() int {
	n := rm.perFrame
	if n > len(rm.pending) {
		n = len(rm.pending)
	}
	for _, a := range rm.pending[:n] {
		rm.resolve(a)
	}
	rm.pending = rm.pending[n:]
	return n
}

// LoadAll resolves every pending asset immediately.
func (rm *ResourceManager) LoadAll() {
	for _, a := range rm.pending {
		rm.resolve(a)
	}
	rm.pending = rm.pending[:0]
}

// PendingCount returns the number of assets still waiting to be resolved.
func (rm *ResourceManager) PendingCount() int {
	return len(rm.pending)
}

func (rm *ResourceManager) resolve(a *Asset) {
	if err := rm.decode(a); err != nil {
		a.state = AssetFailed
		a.err = err
		log.Printf("[ResourceManager] Warning: %v", err)
		return
	}
	a.state = AssetReady
}

func (rm *ResourceManager) decode(a *Asset) error {
	switch a.kind {
	case AssetKindFont:
		data, err := rm.readFont(a.path)
		if err != nil {
			return err
		}
		source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to parse font %s: %w", a.path, err)
		}
		a.fontSource = source

	case AssetKindImage:
		data, err := rm.readFile(a.path)
		if err != nil {
			return err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode image %s: %w", a.path, err)
		}
		a.image = ebiten.NewImageFromImage(img)

	case AssetKindSound:
		if rm.audioContext == nil {
			return fmt.Errorf("cannot load sound %s: audio is disabled", a.path)
		}
		data, err := rm.readFile(a.path)
		if err != nil {
			return err
		}
		pcm, err := decodeSound(a.path, data, rm.audioContext.SampleRate())
		if err != nil {
			return err
		}
		a.pcm = pcm

	default:
		return fmt.Errorf("unsupported asset format: %s (supported: .png, .jpg, .ttf, .otf, .ogg, .mp3, .wav)", a.path)
	}
	return nil
}

// decodeSound decodes a whole voice cue into PCM bytes so players can be
// created from memory without keeping a stream open.
func decodeSound(path string, data []byte, sampleRate int) ([]byte, error) {
	reader := bytes.NewReader(data)

	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		decoded, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		stream = decoded
	case ".ogg":
		decoded, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		stream = decoded
	case ".wav":
		decoded, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", path)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream %s: %w", path, err)
	}
	return pcm, nil
}

func (rm *ResourceManager) readFont(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, BuiltinFontPrefix); ok {
		data, exists := builtinFonts[name]
		if !exists {
			return nil, fmt.Errorf("unknown builtin font %q", name)
		}
		return data, nil
	}
	return rm.readFile(path)
}

// readFile looks the path up in this order:
//  1. the base directory (script-relative paths)
//  2. the embedded filesystem, as written and under "assets/"
//  3. the OS filesystem relative to the working directory
func (rm *ResourceManager) readFile(path string) ([]byte, error) {
	if rm.baseDir != "" && !filepath.IsAbs(path) {
		if data, err := os.ReadFile(filepath.Join(rm.baseDir, path)); err == nil {
			return data, nil
		}
	}

	if embedded.IsInitialized() {
		for _, candidate := range []string{path, "assets/" + strings.TrimPrefix(filepath.ToSlash(path), "./")} {
			if embedded.Exists(candidate) {
				return embedded.ReadFile(candidate)
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset file %s: %w", path, err)
	}
	return data, nil
}

func kindOf(path string) AssetKind {
	if strings.HasPrefix(path, BuiltinFontPrefix) {
		return AssetKindFont
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return AssetKindImage
	case ".ttf", ".otf":
		return AssetKindFont
	case ".ogg", ".mp3", ".wav":
		return AssetKindSound
	}
	return AssetKindUnknown
}

// asAsset returns the ready *Asset behind h, or nil.
func asAsset(h types.Handle) *Asset {
	if h == nil {
		return nil
	}
	a, ok := h.(*Asset)
	if !ok || !a.Ready() {
		return nil
	}
	return a
}

// Image returns the decoded image behind h.
//
// Returns:
//   - The ebiten image, or nil if h is not a ready image asset.
func (rm *ResourceManager) Image(h types.Handle) *ebiten.Image {
	if a := asAsset(h); a != nil {
		return a.image
	}
	return nil
}

// Face returns a text face for the font behind h at the given size.
// Faces are cached by (path, size).
//
// Parameters:
//   - h: A font handle returned by Load.
//   - size: Font size in pixels.
//
// Returns:
//   - The text face, or nil if h is not a ready font asset.
func (rm *ResourceManager) Face(h types.Handle, size float64) *text.GoTextFace {
	a := asAsset(h)
	if a == nil || a.fontSource == nil {
		return nil
	}

	key := faceKey{path: a.path, size: size}
	if face, exists := rm.fontFaceCache[key]; exists {
		return face
	}

	face := &text.GoTextFace{
		Source: a.fontSource,
		Size:   size,
	}
	rm.fontFaceCache[key] = face
	return face
}

// Sound returns the decoded PCM bytes behind h, or nil if h is not a ready
// sound asset.
func (rm *ResourceManager) Sound(h types.Handle) []byte {
	if a := asAsset(h); a != nil {
		return a.pcm
	}
	return nil
}

// AudioContext returns the audio context, which may be nil.
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}
