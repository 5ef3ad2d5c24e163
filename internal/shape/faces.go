package shape

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"shapenav/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrEmptyRegistry = errors.New("face registry is empty")
	ErrDuplicateFace = errors.New("duplicate face id")
	ErrUnknownFace   = errors.New("unknown face")
)

// Face is one selectable side of the navigation object.
// Rotation holds the XYZ angles (radians) that turn the face toward the viewer.
type Face struct {
	ID         string
	Label      string
	Rotation   [3]float32
	ContentRef string
}

// TargetRotation returns the orientation the object takes when this face is selected.
func (f Face) TargetRotation() rl.Quaternion {
	return engine.QuaternionFromEulerXYZ(f.Rotation[0], f.Rotation[1], f.Rotation[2])
}

// Registry is the ordered, read-only list of faces. Index i corresponds to
// mesh tag i.
type Registry struct {
	faces []Face
	byID  map[string]int
}

func NewRegistry(faces []Face) (*Registry, error) {
	if len(faces) == 0 {
		return nil, ErrEmptyRegistry
	}
	r := &Registry{
		faces: make([]Face, len(faces)),
		byID:  make(map[string]int, len(faces)),
	}
	copy(r.faces, faces)
	for i, f := range r.faces {
		if strings.TrimSpace(f.ID) == "" {
			return nil, fmt.Errorf("face %d: blank id", i)
		}
		if _, exists := r.byID[f.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFace, f.ID)
		}
		r.byID[f.ID] = i
	}
	return r, nil
}

// MustRegistry is NewRegistry for registries built in code.
func MustRegistry(faces []Face) *Registry {
	r, err := NewRegistry(faces)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultFaces are the four side faces of the site's pyramid. The base carries
// no entry and is therefore not selectable.
func DefaultFaces() []Face {
	return []Face{
		{ID: "about", Label: "About", Rotation: [3]float32{-4, 0.8, 0}, ContentRef: "content/about.md"},
		{ID: "contact", Label: "Contact", Rotation: [3]float32{2.48, 8.65, -4.7}, ContentRef: "content/contact.md"},
		{ID: "blog", Label: "Blog", Rotation: [3]float32{-2.34, -3.14, 2.35}, ContentRef: "content/blog.md"},
		{ID: "now", Label: "Now", Rotation: [3]float32{0.89, 9.415, -2.4}, ContentRef: "content/now.md"},
	}
}

func DefaultRegistry() *Registry {
	return MustRegistry(DefaultFaces())
}

func (r *Registry) Len() int {
	return len(r.faces)
}

// At returns the face registered at index i.
func (r *Registry) At(i int) (Face, bool) {
	if i < 0 || i >= len(r.faces) {
		return Face{}, false
	}
	return r.faces[i], true
}

func (r *Registry) Lookup(id string) (Face, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Face{}, false
	}
	return r.faces[i], true
}

// Find is Lookup with an error for callers that propagate failures.
func (r *Registry) Find(id string) (Face, error) {
	f, ok := r.Lookup(id)
	if !ok {
		return Face{}, fmt.Errorf("%w: %q", ErrUnknownFace, id)
	}
	return f, nil
}

// IndexOf returns the mesh tag of a face id, or -1.
func (r *Registry) IndexOf(id string) int {
	if i, ok := r.byID[id]; ok {
		return i
	}
	return -1
}

// Faces returns a copy of the registered faces in order.
func (r *Registry) Faces() []Face {
	out := make([]Face, len(r.faces))
	copy(out, r.faces)
	return out
}

// --- JSON ---

type registryFile struct {
	Faces []faceDef `json:"faces"`
}

type faceDef struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Rotation   [3]float32 `json:"rotation"`
	ContentRef string     `json:"contentRef"`
}

// ParseRegistry decodes {"faces": [...]} into a Registry.
func ParseRegistry(data []byte) (*Registry, error) {
	var rf registryFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse faces: %w", err)
	}

	faces := make([]Face, 0, len(rf.Faces))
	for _, def := range rf.Faces {
		label := def.Label
		if label == "" {
			label = def.ID
		}
		faces = append(faces, Face{
			ID:         def.ID,
			Label:      label,
			Rotation:   def.Rotation,
			ContentRef: def.ContentRef,
		})
	}
	return NewRegistry(faces)
}

func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read faces: %w", err)
	}
	r, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
