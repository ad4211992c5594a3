package services

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"

	"academic-hub/internal/application/ports"
	"academic-hub/internal/domain/filerecord"
	"academic-hub/internal/domain/user"
	"academic-hub/internal/domain/userconfig"
	"academic-hub/internal/infrastructure/mq"
)

func cloneRecord(f *filerecord.FileRecord) *filerecord.FileRecord {
	c := *f
	c.Tags = slices.Clone(f.Tags)
	if f.DeletedAt != nil {
		t := *f.DeletedAt
		c.DeletedAt = &t
	}
	return &c
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_total"}, []string{"name"})
}

type FakeBlobStore struct {
	PutResumableFunc func(ctx context.Context, path string, r io.Reader, size int64, contentType string, onProgress ports.ProgressFunc) error
	ContentRefFunc   func(path string) string
	DeleteFunc       func(ctx context.Context, ref string) error

	mu      sync.Mutex
	puts    []string
	deletes []string
}

func (f *FakeBlobStore) PutResumable(
	ctx context.Context,
	path string,
	r io.Reader,
	size int64,
	contentType string,
	onProgress ports.ProgressFunc,
) error {
	f.mu.Lock()
	f.puts = append(f.puts, path)
	f.mu.Unlock()
	if f.PutResumableFunc == nil {
		_, err := io.Copy(io.Discard, r)
		if onProgress != nil {
			onProgress(100)
		}
		return err
	}
	return f.PutResumableFunc(ctx, path, r, size, contentType, onProgress)
}

func (f *FakeBlobStore) ContentRef(path string) string {
	if f.ContentRefFunc == nil {
		return "http://blob.local/files/" + path
	}
	return f.ContentRefFunc(path)
}

func (f *FakeBlobStore) Delete(ctx context.Context, ref string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, ref)
	f.mu.Unlock()
	if f.DeleteFunc == nil {
		return nil
	}
	return f.DeleteFunc(ctx, ref)
}

func (f *FakeBlobStore) deleteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deletes)
}

// MemFileRepository is an in-memory filerecord.Repository. The Err fields
// make the matching call fail.
type MemFileRepository struct {
	mu      sync.Mutex
	records map[filerecord.ID]*filerecord.FileRecord

	FetchErr  error
	SaveErr   error
	DeleteErr error
	saves     int
}

func NewMemFileRepository(records ...*filerecord.FileRecord) *MemFileRepository {
	m := &MemFileRepository{records: make(map[filerecord.ID]*filerecord.FileRecord)}
	for _, r := range records {
		m.records[r.ID] = cloneRecord(r)
	}
	return m
}

func (m *MemFileRepository) FetchFile(_ context.Context, owner uuid.UUID, id filerecord.ID) (*filerecord.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	r, ok := m.records[id]
	if !ok || r.OwnerID != owner {
		return nil, nil
	}
	return cloneRecord(r), nil
}

func (m *MemFileRepository) FetchFiles(_ context.Context, owner uuid.UUID) (filerecord.FileRecords, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	out := filerecord.FileRecords{}
	for _, r := range m.records {
		if r.OwnerID == owner {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func (m *MemFileRepository) SaveFile(_ context.Context, f *filerecord.FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saves++
	m.records[f.ID] = cloneRecord(f)
	return nil
}

func (m *MemFileRepository) DeleteFile(_ context.Context, owner uuid.UUID, id filerecord.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}
	r, ok := m.records[id]
	if !ok || r.OwnerID != owner {
		return false, nil
	}
	delete(m.records, id)
	return true, nil
}

func (m *MemFileRepository) get(id filerecord.ID) *filerecord.FileRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[id]; ok {
		return cloneRecord(r)
	}
	return nil
}

func (m *MemFileRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type FakeConfigRepository struct {
	FetchConfigFunc func(ctx context.Context, owner user.UUID) (*userconfig.Config, error)
	SaveConfigFunc  func(ctx context.Context, cfg *userconfig.Config) error

	saved []*userconfig.Config
}

func (f *FakeConfigRepository) FetchConfig(ctx context.Context, owner user.UUID) (*userconfig.Config, error) {
	if f.FetchConfigFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchConfigFunc(ctx, owner)
}

func (f *FakeConfigRepository) SaveConfig(ctx context.Context, cfg *userconfig.Config) error {
	f.saved = append(f.saved, cfg.Clone())
	if f.SaveConfigFunc == nil {
		return nil
	}
	return f.SaveConfigFunc(ctx, cfg)
}

type FakeRabbitMQ struct {
	in chan mq.Event
}

func NewFakeRabbitMQ() *FakeRabbitMQ { return &FakeRabbitMQ{in: make(chan mq.Event, 64)} }

func (f *FakeRabbitMQ) Connect(context.Context, string) error { return nil }
func (f *FakeRabbitMQ) Init() error                           { return nil }
func (f *FakeRabbitMQ) PublisherWorker(context.Context)       {}
func (f *FakeRabbitMQ) GetInputChan() chan mq.Event           { return f.in }
func (f *FakeRabbitMQ) GetConn() *amqp091.Connection          { return nil }

func (f *FakeRabbitMQ) drain() []mq.Event {
	var out []mq.Event
	for {
		select {
		case e := <-f.in:
			out = append(out, e)
		default:
			return out
		}
	}
}
