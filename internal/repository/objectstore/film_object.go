package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"filmshelf/internal/model"
	"filmshelf/internal/repository"
	"filmshelf/internal/storage"
)

const keyPrefix = "films/"

// FilmObject stores each film as one JSON object named films/<zero-padded id>.json, so lexical key
// order equals insertion order. ID allocation is serialized inside the process; run a single
// writer per bucket.
type FilmObject struct {
	store storage.Storage

	mu     sync.Mutex
	loaded bool
	nextID int64
}

// NewFilmObject creates a film repository on top of object storage.
func NewFilmObject(store storage.Storage) *FilmObject {
	return &FilmObject{store: store}
}

var _ repository.FilmRepository = (*FilmObject)(nil)

func objectKey(id int64) string {
	return fmt.Sprintf("%s%020d.json", keyPrefix, id)
}

func idFromKey(key string) (int64, bool) {
	name, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return 0, false
	}
	name, ok = strings.CutSuffix(name, ".json")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(name, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Insert allocates the next ID and uploads the record. A failed upload does not consume the ID.
func (r *FilmObject) Insert(ctx context.Context, film *model.Film) (*model.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		if err := r.loadNextID(ctx); err != nil {
			return nil, repository.Wrap("insert", err)
		}
	}

	out := *film
	out.ID = r.nextID

	body, err := json.Marshal(out)
	if err != nil {
		return nil, repository.Wrap("insert", err)
	}
	_, err = r.store.Put(ctx, objectKey(out.ID), bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
	})
	if err != nil {
		return nil, repository.Wrap("insert", err)
	}

	r.nextID++
	return &out, nil
}

// loadNextID scans existing keys once so IDs continue after a restart.
func (r *FilmObject) loadNextID(ctx context.Context) error {
	objs, err := r.store.List(ctx, keyPrefix)
	if err != nil {
		return err
	}
	var maxID int64
	for _, o := range objs {
		if id, ok := idFromKey(o.Key); ok && id > maxID {
			maxID = id
		}
	}
	r.nextID = maxID + 1
	r.loaded = true
	return nil
}

// ListAll downloads every film object in key order.
func (r *FilmObject) ListAll(ctx context.Context) ([]model.Film, error) {
	objs, err := r.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, repository.Wrap("list", err)
	}

	items := make([]model.Film, 0, len(objs))
	for _, o := range objs {
		if _, ok := idFromKey(o.Key); !ok {
			continue
		}
		f, err := r.read(ctx, o.Key)
		if err != nil {
			return nil, repository.Wrap("list", err)
		}
		items = append(items, f)
	}
	return items, nil
}

func (r *FilmObject) read(ctx context.Context, key string) (model.Film, error) {
	rc, _, err := r.store.Get(ctx, key)
	if err != nil {
		return model.Film{}, err
	}
	defer rc.Close()

	var f model.Film
	if err := json.NewDecoder(rc).Decode(&f); err != nil {
		return model.Film{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return f, nil
}

// PingContext checks the bucket.
func (r *FilmObject) PingContext(ctx context.Context) error {
	return r.store.Ping(ctx)
}
