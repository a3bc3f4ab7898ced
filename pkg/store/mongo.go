package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
)

// MongoConfig configures [NewMongoStore].
type MongoConfig struct {
	URI        string
	Database   string        // default "clevacompass"
	Collection string        // default "entries"
	Timeout    time.Duration // connect timeout, default 10s
}

// MongoStore keeps one document per entry. Every Save writes a new
// generation of documents and then moves the head pointer (a single
// document in "<collection>_meta") to it, so readers see either the old
// list or the new one, never a partial or empty one.
type MongoStore struct {
	client *mongo.Client
	coll   entryCollection
}

// entryDoc is the stored shape of an entry. Attribute maps use the same
// keys as the JSON document.
type entryDoc struct {
	Generation string          `bson:"generation"`
	Position   int             `bson:"position"`
	Color      string          `bson:"color"`
	Label      string          `bson:"label"`
	Inner      map[string]int  `bson:"inner_level"`
	Outer      map[string]bool `bson:"outer_level"`
}

// entryCollection is the set of collection operations MongoStore builds on.
type entryCollection interface {
	// head returns the current generation, "" when nothing was saved yet.
	head(ctx context.Context) (string, error)
	setHead(ctx context.Context, gen string) error
	find(ctx context.Context, gen string) ([]entryDoc, error)
	insert(ctx context.Context, docs []entryDoc) error
	deleteGeneration(ctx context.Context, gen string) error
	deleteStale(ctx context.Context, keep string) error
}

// NewMongoStore connects to MongoDB and pings the server.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "clevacompass"
	}
	if cfg.Collection == "" {
		cfg.Collection = "entries"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping mongodb")
	}
	db := client.Database(cfg.Database)
	return &MongoStore{
		client: client,
		coll: &mongoCollection{
			entries: db.Collection(cfg.Collection),
			meta:    db.Collection(cfg.Collection + "_meta"),
		},
	}, nil
}

// Load returns the entries of the current generation sorted by position.
func (s *MongoStore) Load(ctx context.Context) ([]compass.Entry, error) {
	gen, err := s.coll.head(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load entries")
	}
	if gen == "" {
		return nil, nil
	}
	docs, err := s.coll.find(ctx, gen)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load entries")
	}

	entries := make([]compass.Entry, 0, len(docs))
	for _, d := range docs {
		e, err := fromDoc(d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Save replaces the stored entries. On failure the previous list stays
// current.
func (s *MongoStore) Save(ctx context.Context, entries []compass.Entry) error {
	gen := uuid.NewString()
	if len(entries) > 0 {
		docs := make([]entryDoc, len(entries))
		for i, e := range entries {
			docs[i] = toDoc(i, e)
			docs[i].Generation = gen
		}
		if err := s.coll.insert(ctx, docs); err != nil {
			s.discard(ctx, gen)
			return errors.Wrap(errors.ErrCodeNetwork, err, "insert entries")
		}
	}
	if err := s.coll.setHead(ctx, gen); err != nil {
		s.discard(ctx, gen)
		return errors.Wrap(errors.ErrCodeNetwork, err, "update entry head")
	}
	// Left-over generations are invisible to Load and retried on the next Save.
	_ = s.coll.deleteStale(ctx, gen)
	return nil
}

func (s *MongoStore) discard(ctx context.Context, gen string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	_ = s.coll.deleteGeneration(ctx, gen)
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toDoc(pos int, e compass.Entry) entryDoc {
	d := entryDoc{
		Position: pos,
		Color:    e.Color,
		Label:    e.Label,
		Inner:    make(map[string]int, compass.NumInner),
		Outer:    make(map[string]bool, compass.NumOuter),
	}
	for i, v := range e.Inner.Values() {
		d.Inner[compass.InnerAttributes[i]] = int(v)
	}
	for i, v := range e.Outer.Values() {
		d.Outer[compass.OuterAttributes[i]] = v
	}
	return d
}

// fromDoc requires every inner and outer key, like the JSON document does.
func fromDoc(d entryDoc) (compass.Entry, error) {
	e := compass.Entry{Color: d.Color, Label: d.Label}
	for _, name := range compass.InnerAttributes {
		v, ok := d.Inner[name]
		if !ok {
			return compass.Entry{}, errors.New(errors.ErrCodeInvalidInput, "stored entry %d: missing key: inner_level.%s", d.Position, name)
		}
		if err := e.Inner.Set(name, compass.TriState(v)); err != nil {
			return compass.Entry{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "stored entry %d", d.Position)
		}
	}
	for _, name := range compass.OuterAttributes {
		v, ok := d.Outer[name]
		if !ok {
			return compass.Entry{}, errors.New(errors.ErrCodeInvalidInput, "stored entry %d: missing key: outer_level.%s", d.Position, name)
		}
		if err := e.Outer.Set(name, v); err != nil {
			return compass.Entry{}, err
		}
	}
	return e, nil
}

// mongoCollection implements entryCollection on two collections: the
// entry documents and a meta collection holding the head pointer.
type mongoCollection struct {
	entries *mongo.Collection
	meta    *mongo.Collection
}

const headID = "head"

func (c *mongoCollection) head(ctx context.Context) (string, error) {
	var h struct {
		Generation string `bson:"generation"`
	}
	err := c.meta.FindOne(ctx, bson.D{{Key: "_id", Value: headID}}).Decode(&h)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	return h.Generation, err
}

func (c *mongoCollection) setHead(ctx context.Context, gen string) error {
	_, err := c.meta.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: headID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "generation", Value: gen}}}},
		options.Update().SetUpsert(true))
	return err
}

func (c *mongoCollection) find(ctx context.Context, gen string) ([]entryDoc, error) {
	cur, err := c.entries.Find(ctx,
		bson.D{{Key: "generation", Value: gen}},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []entryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *mongoCollection) insert(ctx context.Context, docs []entryDoc) error {
	batch := make([]any, len(docs))
	for i, d := range docs {
		batch[i] = d
	}
	_, err := c.entries.InsertMany(ctx, batch)
	return err
}

func (c *mongoCollection) deleteGeneration(ctx context.Context, gen string) error {
	_, err := c.entries.DeleteMany(ctx, bson.D{{Key: "generation", Value: gen}})
	return err
}

func (c *mongoCollection) deleteStale(ctx context.Context, keep string) error {
	_, err := c.entries.DeleteMany(ctx, bson.D{{Key: "generation", Value: bson.D{{Key: "$ne", Value: keep}}}})
	return err
}

var (
	_ Store           = (*MongoStore)(nil)
	_ entryCollection = (*mongoCollection)(nil)
)
