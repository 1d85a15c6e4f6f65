package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/myevents/myevents-go/internal/model"
	"github.com/myevents/myevents-go/internal/repository"
)

// In-memory repository fakes. fakeRegistrationRepo.Create is atomic
// under the mutex, mirroring the contract of the SQL transaction in the
// real repository.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copy := u
			return &copy, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copy := u
	return &copy, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	f.users[user.ID] = *user
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]model.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int64]model.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	event.ID = f.nextID
	event.CreatedAt = time.Now().UTC()
	event.UpdatedAt = event.CreatedAt
	f.events[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	copy := e
	return &copy, nil
}

func (f *fakeEventRepo) ListByOrganizer(ctx context.Context, organizerID int64, skip, limit int, nameFilter string) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []model.Event
	for _, e := range f.events {
		if e.OrganizerID == organizerID && matchesName(e.Name, nameFilter) {
			matched = append(matched, e)
		}
	}
	return page(matched, skip, limit), nil
}

func (f *fakeEventRepo) ListPublished(ctx context.Context, skip, limit int, nameFilter string) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []model.Event
	for _, e := range f.events {
		if e.Status == model.EventStatusPublished && matchesName(e.Name, nameFilter) {
			matched = append(matched, e)
		}
	}
	return page(matched, skip, limit), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return repository.ErrEventNotFound
	}
	event.UpdatedAt = time.Now().UTC()
	f.events[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int64]model.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	session.ID = f.nextID
	session.CreatedAt = time.Now().UTC()
	session.UpdatedAt = session.CreatedAt
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copy := s
	return &copy, nil
}

func (f *fakeSessionRepo) ListByEvent(ctx context.Context, eventID int64, skip, limit int) ([]model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []model.Session
	for _, s := range f.sessions {
		if s.EventID == eventID {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if skip >= len(matched) {
		return nil, nil
	}
	matched = matched[skip:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, session *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[session.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	session.UpdatedAt = time.Now().UTC()
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

type fakeRegistrationRepo struct {
	mu            sync.Mutex
	nextID        int64
	registrations map[int64]model.Registration
	events        *fakeEventRepo
}

func newFakeRegistrationRepo(events *fakeEventRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: make(map[int64]model.Registration),
		events:        events,
	}
}

// Create enforces the capacity ceiling and (user, event) uniqueness in a
// single critical section, like the real repository's transaction.
func (f *fakeRegistrationRepo) Create(ctx context.Context, userID, eventID int64) (*model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, err := f.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			count++
		}
		if reg.EventID == eventID && reg.UserID == userID {
			return nil, repository.ErrAlreadyRegistered
		}
	}
	if count >= event.Capacity {
		return nil, repository.ErrEventFull
	}

	f.nextID++
	reg := model.Registration{
		ID:               f.nextID,
		UserID:           userID,
		EventID:          eventID,
		RegistrationDate: time.Now().UTC(),
	}
	f.registrations[reg.ID] = reg
	return &reg, nil
}

func (f *fakeRegistrationRepo) Get(ctx context.Context, userID, eventID int64) (*model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reg := range f.registrations {
		if reg.UserID == userID && reg.EventID == eventID {
			copy := reg
			return &copy, nil
		}
	}
	return nil, repository.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []model.Registration
	for _, reg := range f.registrations {
		if reg.UserID == userID {
			matched = append(matched, reg)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if skip >= len(matched) {
		return nil, nil
	}
	matched = matched[skip:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeRegistrationRepo) ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []model.Registration
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			matched = append(matched, reg)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (f *fakeRegistrationRepo) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func matchesName(name, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

func page(events []model.Event, skip, limit int) []model.Event {
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	if skip >= len(events) {
		return nil
	}
	events = events[skip:]
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}
