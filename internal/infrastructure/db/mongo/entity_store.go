package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vanguard/directory/internal/core/ports"
)

const (
	collectionEntities = "entities"
	collectionIndex    = "entity_index"
	collectionSeq      = "entity_seq"
)

type entityDoc struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

type indexDoc struct {
	ID     string `bson:"_id"`
	Index  string `bson:"index"`
	Member string `bson:"member"`
	Seq    int64  `bson:"seq"`
}

type seqDoc struct {
	Index string `bson:"_id"`
	Seq   int64  `bson:"seq"`
}

// EntityStore implements ports.EntityStore on MongoDB. Documents live in
// one collection keyed by entity key; index entries carry a per-index
// sequence number taken from a counter document.
type EntityStore struct {
	db       *mongo.Database
	entities *mongo.Collection
	index    *mongo.Collection
	seq      *mongo.Collection
}

var _ ports.EntityStore = (*EntityStore)(nil)

func NewEntityStore(db *mongo.Database) *EntityStore {
	return &EntityStore{
		db:       db,
		entities: db.Collection(collectionEntities),
		index:    db.Collection(collectionIndex),
		seq:      db.Collection(collectionSeq),
	}
}

func indexEntryID(index, id string) string { return index + "/" + id }

func (s *EntityStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc entityDoc
	if err := s.entities.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("mongo get: %w", err)
	}
	return doc.Value, nil
}

func (s *EntityStore) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.entities.Find(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	var docs []entityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}

	byKey := make(map[string][]byte, len(docs))
	for _, d := range docs {
		byKey[d.Key] = d.Value
	}
	for i, k := range keys {
		out[i] = byKey[k]
	}
	return out, nil
}

func (s *EntityStore) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.entities.CountDocuments(ctx, bson.M{"_id": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo count: %w", err)
	}
	return n > 0, nil
}

func (s *EntityStore) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.entities.ReplaceOne(ctx, bson.M{"_id": key}, entityDoc{Key: key, Value: value}, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace: %w", err)
	}
	return nil
}

func (s *EntityStore) Delete(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.entities.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return false, fmt.Errorf("mongo delete: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// IndexAdd allocates the next sequence for index and inserts the entry. A
// concurrent insert of the same id loses on the duplicate _id and is ignored.
func (s *EntityStore) IndexAdd(ctx context.Context, index, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	entryID := indexEntryID(index, id)
	n, err := s.index.CountDocuments(ctx, bson.M{"_id": entryID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("mongo index lookup: %w", err)
	}
	if n > 0 {
		return nil
	}

	var counter seqDoc
	err = s.seq.FindOneAndUpdate(ctx,
		bson.M{"_id": index},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return fmt.Errorf("mongo index sequence: %w", err)
	}

	_, err = s.index.InsertOne(ctx, indexDoc{ID: entryID, Index: index, Member: id, Seq: counter.Seq})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mongo index insert: %w", err)
	}
	return nil
}

func (s *EntityStore) IndexRemove(ctx context.Context, index, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.index.DeleteOne(ctx, bson.M{"_id": indexEntryID(index, id)})
	if err != nil {
		return false, fmt.Errorf("mongo index remove: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *EntityStore) IndexPage(ctx context.Context, index, cursor string, limit int) (ports.IndexPage, error) {
	if limit < 1 {
		limit = 1
	}
	filter := bson.M{"index": index}
	if cursor != "" {
		n, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil || n < 0 {
			return ports.IndexPage{}, ports.ErrInvalidCursor
		}
		filter["seq"] = bson.M{"$gte": n}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "seq", Value: 1}}).
		SetLimit(int64(limit + 1))
	cur, err := s.index.Find(ctx, filter, opts)
	if err != nil {
		return ports.IndexPage{}, fmt.Errorf("mongo index page: %w", err)
	}
	var docs []indexDoc
	if err := cur.All(ctx, &docs); err != nil {
		return ports.IndexPage{}, fmt.Errorf("mongo index decode: %w", err)
	}

	page := ports.IndexPage{IDs: make([]string, 0, limit)}
	for i, d := range docs {
		if i == limit {
			page.Next = strconv.FormatInt(d.Seq, 10)
			break
		}
		page.IDs = append(page.IDs, d.Member)
	}
	return page, nil
}

func (s *EntityStore) IndexLen(ctx context.Context, index string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := s.index.CountDocuments(ctx, bson.M{"index": index})
	if err != nil {
		return 0, fmt.Errorf("mongo index len: %w", err)
	}
	return n, nil
}

func (s *EntityStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the secondary index used for ordered paging.
func (s *EntityStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.index.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "index", Value: 1}, {Key: "seq", Value: 1}},
	})
	return err
}
