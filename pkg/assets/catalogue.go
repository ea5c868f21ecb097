// Package assets provides the anatomical outline catalogue: four immutable
// collections (male/female, front/back) of region definitions. The embedded
// collections are parsed once and shared read-only; callers always receive
// clones.
package assets

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/fitglue/bodymap/pkg/domain/body"
)

//go:embed data/*.json
var embedded embed.FS

var (
	ErrUnknownGender     = errors.New("unknown gender")
	ErrUnknownView       = errors.New("unknown view")
	ErrInvalidCollection = errors.New("invalid collection")
)

// unsafeChars may not appear in slugs or path data, which are written into
// SVG attributes unescaped.
const unsafeChars = "\"'<>&"

// Collection is one silhouette: the region definitions of a gender and view
// together with the view box their path data is drawn in.
type Collection struct {
	Gender  body.Gender             `json:"gender"`
	View    body.View               `json:"side"`
	ViewBox [4]float64              `json:"viewBox"`
	Regions []body.RegionDefinition `json:"regions"`
}

// Has reports whether the collection defines slug.
func (c *Collection) Has(slug body.Slug) bool {
	for _, r := range c.Regions {
		if r.Slug == slug {
			return true
		}
	}
	return false
}

func (c *Collection) clone() *Collection {
	out := &Collection{
		Gender:  c.Gender,
		View:    c.View,
		ViewBox: c.ViewBox,
		Regions: make([]body.RegionDefinition, len(c.Regions)),
	}
	for i, r := range c.Regions {
		out.Regions[i] = body.RegionDefinition{
			Slug: r.Slug,
			Path: body.Outline{
				Common: append([]string(nil), r.Path.Common...),
				Left:   append([]string(nil), r.Path.Left...),
				Right:  append([]string(nil), r.Path.Right...),
			},
		}
	}
	return out
}

type key struct {
	gender body.Gender
	view   body.View
}

// Catalogue is a complete set of collections.
type Catalogue struct {
	collections map[key]*Collection
}

// ObjectName is the file name of a collection, both in the embedded data
// directory and in a catalogue bucket.
func ObjectName(gender body.Gender, view body.View) string {
	return fmt.Sprintf("%s-%s.json", gender, view)
}

// Parse decodes collection documents into a catalogue. Every gender and view
// combination must be present exactly once.
func Parse(docs ...[]byte) (*Catalogue, error) {
	cat := &Catalogue{collections: make(map[key]*Collection, len(docs))}
	for i, doc := range docs {
		var c Collection
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("%w: document %d: %v", ErrInvalidCollection, i, err)
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		k := key{c.Gender, c.View}
		if _, dup := cat.collections[k]; dup {
			return nil, fmt.Errorf("%w: %s/%s defined twice", ErrInvalidCollection, c.Gender, c.View)
		}
		cat.collections[k] = &c
	}
	for _, g := range []body.Gender{body.GenderMale, body.GenderFemale} {
		for _, v := range []body.View{body.ViewFront, body.ViewBack} {
			if _, ok := cat.collections[key{g, v}]; !ok {
				return nil, fmt.Errorf("%w: missing %s/%s", ErrInvalidCollection, g, v)
			}
		}
	}
	return cat, nil
}

func (c *Collection) validate() error {
	if _, err := NormalizeGender(string(c.Gender)); err != nil || c.Gender == "" {
		return fmt.Errorf("%w: gender %q", ErrInvalidCollection, c.Gender)
	}
	if _, err := NormalizeView(string(c.View)); err != nil || c.View == "" {
		return fmt.Errorf("%w: side %q", ErrInvalidCollection, c.View)
	}
	seen := make(map[body.Slug]bool, len(c.Regions))
	for _, r := range c.Regions {
		if r.Slug == "" {
			return fmt.Errorf("%w: %s/%s has a region without slug", ErrInvalidCollection, c.Gender, c.View)
		}
		if seen[r.Slug] {
			return fmt.Errorf("%w: %s/%s repeats slug %s", ErrInvalidCollection, c.Gender, c.View, r.Slug)
		}
		seen[r.Slug] = true

		if strings.ContainsAny(string(r.Slug), unsafeChars) {
			return fmt.Errorf("%w: %s/%s has an unsafe slug %q", ErrInvalidCollection, c.Gender, c.View, r.Slug)
		}
		for _, group := range [][]string{r.Path.Common, r.Path.Left, r.Path.Right} {
			for _, d := range group {
				if strings.ContainsAny(d, unsafeChars) {
					return fmt.Errorf("%w: %s/%s region %s has unsafe path data", ErrInvalidCollection, c.Gender, c.View, r.Slug)
				}
			}
		}
	}
	return nil
}

// Select returns a copy of the collection for gender and view.
func (c *Catalogue) Select(gender body.Gender, view body.View) (*Collection, error) {
	g, err := NormalizeGender(string(gender))
	if err != nil {
		return nil, err
	}
	v, err := NormalizeView(string(view))
	if err != nil {
		return nil, err
	}
	return c.collections[key{g, v}].clone(), nil
}

var (
	embeddedOnce sync.Once
	embeddedCat  *Catalogue
	embeddedErr  error
)

// Embedded returns the catalogue compiled into the binary.
func Embedded() (*Catalogue, error) {
	embeddedOnce.Do(func() {
		var docs [][]byte
		for _, g := range []body.Gender{body.GenderMale, body.GenderFemale} {
			for _, v := range []body.View{body.ViewFront, body.ViewBack} {
				doc, err := embedded.ReadFile(path.Join("data", ObjectName(g, v)))
				if err != nil {
					embeddedErr = fmt.Errorf("read embedded collection: %w", err)
					return
				}
				docs = append(docs, doc)
			}
		}
		embeddedCat, embeddedErr = Parse(docs...)
	})
	return embeddedCat, embeddedErr
}

// Select picks a collection from the embedded catalogue. Empty values
// default to male and front.
func Select(gender body.Gender, view body.View) (*Collection, error) {
	cat, err := Embedded()
	if err != nil {
		return nil, err
	}
	return cat.Select(gender, view)
}

// Reader is the subset of shared.BlobStore needed to load a catalogue.
type Reader interface {
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// Load reads the four collections from a bucket, named as ObjectName does.
func Load(ctx context.Context, store Reader, bucket string) (*Catalogue, error) {
	var docs [][]byte
	for _, g := range []body.Gender{body.GenderMale, body.GenderFemale} {
		for _, v := range []body.View{body.ViewFront, body.ViewBack} {
			name := ObjectName(g, v)
			doc, err := store.Read(ctx, bucket, name)
			if err != nil {
				return nil, fmt.Errorf("read gs://%s/%s: %w", bucket, name, err)
			}
			docs = append(docs, doc)
		}
	}
	return Parse(docs...)
}

// NormalizeGender validates a gender name. The empty string means male.
func NormalizeGender(s string) (body.Gender, error) {
	switch body.Gender(s) {
	case "":
		return body.GenderMale, nil
	case body.GenderMale, body.GenderFemale:
		return body.Gender(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGender, s)
}

// NormalizeView validates a view name. The empty string means front.
func NormalizeView(s string) (body.View, error) {
	switch body.View(s) {
	case "":
		return body.ViewFront, nil
	case body.ViewFront, body.ViewBack:
		return body.View(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}
