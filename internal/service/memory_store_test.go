package service

import (
	"context"
	"sync"

	"video-hub/internal/models"
	"video-hub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// memoryVideoStore is an in-memory VideoStore with the same conditional
// replace semantics as the Mongo repository.
type memoryVideoStore struct {
	mu     sync.Mutex
	videos map[string]models.VideoDocument
	order  []string

	insertErr  error
	findErr    error
	replaceErr error

	// beforeReplace, when set, runs once right before the next conditional
	// replace, with the lock released. Tests use it to slip a competing write
	// between a rater's read and write.
	beforeReplace func()
	replaces      int
}

func newMemoryVideoStore() *memoryVideoStore {
	return &memoryVideoStore{videos: make(map[string]models.VideoDocument)}
}

func copyVideo(v models.VideoDocument) models.VideoDocument {
	if v.Ratings != nil {
		v.Ratings = append([]models.RatingDocument(nil), v.Ratings...)
	}
	return v
}

func (m *memoryVideoStore) Insert(_ context.Context, video *models.VideoDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	video.ID = bson.NewObjectID()
	video.Version = 0
	m.videos[video.ID.Hex()] = copyVideo(*video)
	m.order = append(m.order, video.ID.Hex())
	return nil
}

func (m *memoryVideoStore) FindByID(_ context.Context, id string) (*models.VideoDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	v, ok := m.videos[id]
	if !ok {
		return nil, nil
	}
	out := copyVideo(v)
	return &out, nil
}

func (m *memoryVideoStore) FindAll(_ context.Context) ([]models.VideoDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]models.VideoDocument, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, copyVideo(m.videos[id]))
	}
	return out, nil
}

func (m *memoryVideoStore) ReplaceIfVersion(_ context.Context, video *models.VideoDocument, expectedVersion int64) error {
	m.mu.Lock()
	hook := m.beforeReplace
	m.beforeReplace = nil
	m.mu.Unlock()
	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaces++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	current, ok := m.videos[video.ID.Hex()]
	if !ok || current.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	video.Version = expectedVersion + 1
	m.videos[video.ID.Hex()] = copyVideo(*video)
	return nil
}

func (m *memoryVideoStore) get(id string) models.VideoDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyVideo(m.videos[id])
}

// seed stores a video directly, bypassing validation.
func (m *memoryVideoStore) seed(v models.VideoDocument) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = bson.NewObjectID()
	m.videos[v.ID.Hex()] = copyVideo(v)
	m.order = append(m.order, v.ID.Hex())
	return v.ID.Hex()
}

// recordingNotifier captures published messages.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	done     chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 16)}
}

func (r *recordingNotifier) Publish(_ context.Context, message string) error {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}
