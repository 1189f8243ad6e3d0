// Package catalog models the searchable projection of the platform's
// resources: trained predictors, uploaded datasets, and the folders that
// group them. It knows nothing about training or storage; entries carry only
// what the search layer ranks and displays.
package catalog

import (
	"encoding/json"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/ksuid"

	"github.com/predictlab/rankx/fuzzy"
)

// Kind identifies what a catalog entry represents.
type Kind string

const (
	// KindPredictor is a trained survival predictor.
	KindPredictor Kind = "predictor"
	// KindDataset is an uploaded dataset.
	KindDataset Kind = "dataset"
)

// ModelFamilies lists the survival model families a predictor can be
// trained with.
var ModelFamilies = []string{
	"MTLR", "DeepHit", "CoxPH", "AFT", "GB", "CoxTime", "CQRNN", "LogNormalNN", "KM",
}

// Entry is one searchable resource.
type Entry struct {
	// ID is the entry's unique identifier.
	ID string `json:"id"`

	// Kind says whether this is a predictor or a dataset.
	Kind Kind `json:"kind"`

	// Name is the user-facing title.
	Name string `json:"name"`

	// Description is optional free text shown under the name.
	Description string `json:"description,omitempty"`

	// Owner is the username of the entry's owner.
	Owner string `json:"owner,omitempty"`

	// Private hides the entry from public listings.
	Private bool `json:"private,omitempty"`

	// Model is the survival model family, set for predictors only.
	Model string `json:"model,omitempty"`

	// CreatedAt is when the resource was created.
	CreatedAt time.Time `json:"created_at,omitzero"`

	// Fields carries any extra attributes the backend attached.
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// Folder groups entries by id.
type Folder struct {
	// Name is the folder's display name.
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// ItemIDs lists the entries contained in this folder.
	ItemIDs []string `json:"item_ids,omitempty"`
}

// Catalog is a loaded set of entries and folders.
type Catalog struct {
	Entries []Entry  `json:"entries"`
	Folders []Folder `json:"folders,omitempty"`

	byID map[string]int
}

// NewID returns a fresh entry identifier.
func NewID() string {
	return ksuid.New().String()
}

// Load reads a JSON catalog and validates it: entry ids must be present and
// unique, kinds known, and folder item ids resolvable.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(err, "failed to decode catalog JSON")
	}

	c.byID = make(map[string]int, len(c.Entries))
	for i, e := range c.Entries {
		if e.ID == "" {
			return nil, errors.Newf("entry %d (%q) has no id", i, e.Name)
		}
		if e.Name == "" {
			return nil, errors.Newf("entry %s has no name", e.ID)
		}
		switch e.Kind {
		case KindPredictor, KindDataset:
		default:
			return nil, errors.Newf("entry %s has unknown kind %q", e.ID, e.Kind)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, errors.Newf("duplicate entry id %s", e.ID)
		}
		c.byID[e.ID] = i
	}

	for _, f := range c.Folders {
		if f.Name == "" {
			return nil, errors.New("folder has no name")
		}
		for _, id := range f.ItemIDs {
			if _, ok := c.byID[id]; !ok {
				return nil, errors.Newf("folder %q references unknown entry %s", f.Name, id)
			}
		}
	}

	return &c, nil
}

// Get returns the entry with the given id.
func (c *Catalog) Get(id string) (Entry, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.Entries[idx], true
}

// Item projects the entry into the shape the ranker matches on.
func (e Entry) Item() fuzzy.Item[Entry] {
	return fuzzy.Item[Entry]{
		Title: e.Name,
		Notes: e.Description,
		Value: e,
	}
}

// FieldMap flattens the entry into document fields for the search backends.
// Extra Fields are carried through; well-known attributes win on collision.
func (e Entry) FieldMap() map[string]interface{} {
	fields := make(map[string]interface{}, len(e.Fields)+6)
	for k, v := range e.Fields {
		fields[k] = v
	}

	fields["name"] = e.Name
	fields["kind"] = string(e.Kind)
	if e.Description != "" {
		fields["description"] = e.Description
	}
	if e.Owner != "" {
		fields["owner"] = e.Owner
	}
	fields["private"] = e.Private
	if e.Model != "" {
		fields["model"] = e.Model
	}
	if !e.CreatedAt.IsZero() {
		fields["created_at"] = e.CreatedAt.Format(time.RFC3339)
	}

	return fields
}

// Items projects every entry for the collection ranker.
func (c *Catalog) Items() []fuzzy.Item[Entry] {
	items := make([]fuzzy.Item[Entry], 0, len(c.Entries))
	for _, e := range c.Entries {
		items = append(items, e.Item())
	}
	return items
}

// FuzzyFolders projects folders, with their member entries resolved, for the
// folder-aware ranker.
func (c *Catalog) FuzzyFolders() []fuzzy.Folder[Entry] {
	folders := make([]fuzzy.Folder[Entry], 0, len(c.Folders))
	for _, f := range c.Folders {
		items := make([]fuzzy.Item[Entry], 0, len(f.ItemIDs))
		for _, id := range f.ItemIDs {
			if e, ok := c.Get(id); ok {
				items = append(items, e.Item())
			}
		}
		folders = append(folders, fuzzy.Folder[Entry]{
			Name:        f.Name,
			Description: f.Description,
			Items:       items,
		})
	}
	return folders
}
