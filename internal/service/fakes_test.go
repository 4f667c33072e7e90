package service

import (
	"bytes"
	"context"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"dining-reviews/internal/database"
	"dining-reviews/internal/models"
	"dining-reviews/internal/storage"
)

// memStore is an in-memory Store that keeps insertion order by id.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]*models.User
	reviews map[int64]*models.Review
	images  map[string]*models.Image

	imageDeletes int
	imageChecks  int
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int64]*models.User{},
		reviews: map[int64]*models.Review{},
		images:  map[string]*models.Image{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(ctx context.Context, arg database.CreateUserParams) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == arg.Username {
			return nil, database.ErrUsernameTaken
		}
	}
	u := &models.User{ID: m.id(), Username: arg.Username, PasswordHash: arg.PasswordHash, ProfileImageID: arg.ProfileImageID, CreatedAt: time.Now()}
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := []models.User{}
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memStore) UpdateUserByUsername(ctx context.Context, arg database.UpdateUserParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == arg.Username {
			u.PasswordHash = arg.PasswordHash
			u.ProfileImageID = arg.ProfileImageID
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) DeleteUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Username == username {
			delete(m.users, id)
			return u, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateReview(ctx context.Context, arg database.CreateReviewParams) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := &models.Review{
		ID:            m.id(),
		UserID:        arg.UserID,
		Location:      arg.Location,
		ReviewText:    arg.ReviewText,
		Rating:        arg.Rating,
		VisitedDate:   arg.VisitedDate,
		ReviewImageID: arg.ReviewImageID,
		CreatedDate:   time.Now(),
	}
	m.reviews[r.ID] = r
	cp := *r
	return &cp, nil
}

func (m *memStore) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) filterReviews(keep func(*models.Review) bool) []models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, r := range m.reviews {
		if keep(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) ListReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error) {
	return m.filterReviews(func(r *models.Review) bool { return r.UserID == userID }), nil
}

func (m *memStore) ListReviewsByLocation(ctx context.Context, location string) ([]models.Review, error) {
	return m.filterReviews(func(r *models.Review) bool { return r.Location == location }), nil
}

func (m *memStore) ListLatestReviews(ctx context.Context, limit int) ([]models.Review, error) {
	all := m.filterReviews(func(*models.Review) bool { return true })
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	slices.Reverse(all)
	return all, nil
}

func (m *memStore) UpdateReview(ctx context.Context, id int64, arg database.UpdateReviewParams) (models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	before := *r
	if arg.Rating != nil {
		r.Rating = *arg.Rating
	}
	if arg.Location != nil {
		r.Location = *arg.Location
	}
	if arg.ReviewText != nil {
		r.ReviewText = *arg.ReviewText
	}
	if arg.VisitedDate != nil {
		r.VisitedDate = *arg.VisitedDate
	}
	res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if before != *r {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *memStore) DeleteReview(ctx context.Context, id int64) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, nil
	}
	delete(m.reviews, id)
	return r, nil
}

func (m *memStore) CreateImageFile(ctx context.Context, arg database.CreateImageParams) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img := &models.Image{ID: arg.ID, Bucket: arg.Bucket, Filename: arg.Filename, ContentType: arg.ContentType, Length: arg.Length, ChunkSize: arg.ChunkSize, UploadDate: time.Now()}
	m.images[arg.Bucket+"/"+arg.ID] = img
	cp := *img
	return &cp, nil
}

func (m *memStore) GetImageFile(ctx context.Context, bucket, id string) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if img, ok := m.images[bucket+"/"+id]; ok {
		cp := *img
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) ImageFileExists(ctx context.Context, bucket, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imageChecks++
	_, ok := m.images[bucket+"/"+id]
	return ok, nil
}

func (m *memStore) DeleteImageFile(ctx context.Context, bucket, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imageDeletes++
	key := bucket + "/" + id
	if _, ok := m.images[key]; !ok {
		return false, nil
	}
	delete(m.images, key)
	return true, nil
}

// memBlobs is an in-memory storage.BlobStorage.
type memBlobs struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{blobs: map[string][]byte{}}
}

func (b *memBlobs) Save(ctx context.Context, id string, data io.Reader) (int64, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return 0, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[id] = buf
	return int64(len(buf)), nil
}

func (b *memBlobs) Get(ctx context.Context, id string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.blobs[id]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(buf)), nil
}

func (b *memBlobs) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.blobs, id)
	return nil
}

type recordingFeed struct {
	mu     sync.Mutex
	events []string
}

func (f *recordingFeed) PublishReview(eventType string, review models.Review) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
}
