package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/pkg/logger"
	"mycloud-drive/internal/repository/contract"
	"mycloud-drive/internal/repository/specification"
	"mycloud-drive/internal/repository/unitofwork"
	"mycloud-drive/pkg/events"
	"mycloud-drive/pkg/llm"

	"github.com/google/uuid"
)

var testLogger = logger.NewNopLogger()

// memStore backs every fake repository. Specifications are interpreted by type.
type memStore struct {
	mu         sync.Mutex
	users      []*entity.User
	files      []*entity.File
	accessLogs []*entity.AccessLog
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUoW{store: s}
}

type memUoW struct {
	store *memStore
}

func (u *memUoW) Begin(ctx context.Context) error { return nil }
func (u *memUoW) Commit() error                   { return nil }
func (u *memUoW) Rollback() error                 { return nil }

func (u *memUoW) UserRepository() contract.UserRepository {
	return &memUserRepo{store: u.store}
}

func (u *memUoW) FileRepository() contract.FileRepository {
	return &memFileRepo{store: u.store}
}

func (u *memUoW) AccessLogRepository() contract.AccessLogRepository {
	return &memAccessLogRepo{store: u.store}
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *user
	r.store.users = append(r.store.users, &cp)
	return nil
}

func (r *memUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			n++
		}
	}
	return n, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUsername:
			if u.Username != s.Username {
				return false
			}
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		}
	}
	return true
}

type memFileRepo struct{ store *memStore }

func (r *memFileRepo) Upsert(ctx context.Context, file *entity.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, f := range r.store.files {
		if f.OwnerId == file.OwnerId && f.Filename == file.Filename {
			f.SizeBytes = file.SizeBytes
			*file = *f
			return nil
		}
	}
	cp := *file
	r.store.files = append(r.store.files, &cp)
	return nil
}

func (r *memFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, f := range r.store.files {
		if f.Id == id {
			r.store.files = append(r.store.files[:i], r.store.files[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *memFileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.File
	for _, f := range r.store.files {
		if matchFile(f, specs) {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func matchFile(f *entity.File, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.FileOwnedBy:
			if f.OwnerId != s.OwnerID {
				return false
			}
		case specification.ByFilename:
			if f.Filename != s.Filename {
				return false
			}
		case specification.ByFilenames:
			found := false
			for _, name := range s.Filenames {
				if name == f.Filename {
					found = true
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

type memAccessLogRepo struct{ store *memStore }

func (r *memAccessLogRepo) Create(ctx context.Context, log *entity.AccessLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *log
	r.store.accessLogs = append(r.store.accessLogs, &cp)
	return nil
}

func (r *memAccessLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.AccessLog
	limit := -1
	for _, l := range r.store.accessLogs {
		keep := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.UserOwnedBy:
				keep = keep && l.UserId == s.UserID
			case specification.Pagination:
				limit = s.Limit
			}
		}
		if keep {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) logs() []*entity.AccessLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.AccessLog, len(s.accessLogs))
	copy(out, s.accessLogs)
	return out
}

// recordingAccessLog captures Record calls.
type recordingAccessLog struct {
	mu     sync.Mutex
	events []events.FileAccessed
}

func (r *recordingAccessLog) Record(ctx context.Context, evt events.FileAccessed) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordingAccessLog) Start(ctx context.Context) (func(), error) { return func() {}, nil }

func (r *recordingAccessLog) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.AccessLog, error) {
	return nil, nil
}

func (r *recordingAccessLog) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type recordingPublisher struct {
	mu      sync.Mutex
	changed []events.FilesChanged
}

func (p *recordingPublisher) PublishFilesChanged(evt events.FilesChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changed = append(p.changed, evt)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.changed)
}

type fakeEventPublisher struct {
	mu        sync.Mutex
	err       error
	published []events.Event
}

func (p *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

type fakeLLM struct {
	mu      sync.Mutex
	history []llm.Message
	reply   string
	err     error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = history
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var errBusDown = errors.New("nats: no responders available")
