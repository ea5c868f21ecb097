package firestore

import (
	"cloud.google.com/go/firestore"

	shared "github.com/fitglue/bodymap/pkg"
	"github.com/fitglue/bodymap/pkg/types"
)

type Client struct {
	fs *firestore.Client
}

func NewClient(client *firestore.Client) *Client {
	return &Client{fs: client}
}

func (c *Client) Close() error {
	return c.fs.Close()
}

// Presets are sub-collections of Users: users/{uid}/bodymap_presets/{id}
func (c *Client) Presets(userId string) *Collection[types.Preset] {
	return &Collection[types.Preset]{
		Ref:           c.fs.Collection(shared.CollectionUsers).Doc(userId).Collection(shared.CollectionPresets),
		ToFirestore:   PresetToFirestore,
		FromFirestore: FirestoreToPreset,
	}
}
