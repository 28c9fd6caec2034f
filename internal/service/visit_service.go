package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/meeting"
)

// maxVisitsPerUser bounds the open visits of one user. Opening another one
// evicts the least recently used.
const maxVisitsPerUser = 16

type visit struct {
	list     *meeting.TypeList
	userID   string
	lastSeen time.Time
}

// VisitService keeps the meeting-type view state of open home pages. A visit
// starts when the page is rendered and ends on navigation or after ttl of
// inactivity.
type VisitService struct {
	client   meeting.CallCreator
	baseURL  string
	ttl      time.Duration
	log      *slog.Logger
	observer meeting.Observer
	now      func() time.Time
	perUser  int

	mu     sync.Mutex
	visits map[uuid.UUID]*visit
}

func NewVisitService(client meeting.CallCreator, baseURL string, ttl time.Duration, observer meeting.Observer, log *slog.Logger) *VisitService {
	if log == nil {
		log = slog.Default()
	}
	return &VisitService{
		client:   client,
		baseURL:  baseURL,
		ttl:      ttl,
		log:      log,
		observer: observer,
		now:      time.Now,
		perUser:  maxVisitsPerUser,
		visits:   make(map[uuid.UUID]*visit),
	}
}

func (s *VisitService) Open(user *domain.User) (uuid.UUID, *meeting.TypeList) {
	const op = "service.visit.open"

	list := meeting.NewTypeList(user, s.client, s.baseURL,
		meeting.WithLogger(s.log),
		meeting.WithObserver(s.observer),
		meeting.WithClock(s.now),
	)

	id := uuid.New()
	v := &visit{list: list, lastSeen: s.now()}
	if user != nil {
		v.userID = user.ID
	}

	s.mu.Lock()
	evicted := s.evictLocked(v.userID)
	s.visits[id] = v
	s.mu.Unlock()

	s.log.Debug("visit opened",
		slog.String("op", op),
		slog.String("visit_id", id.String()),
		slog.Int("evicted", evicted),
	)
	return id, list
}

// evictLocked makes room for one more visit of userID.
func (s *VisitService) evictLocked(userID string) int {
	if s.perUser <= 0 {
		return 0
	}

	evicted := 0
	for {
		var (
			oldestID uuid.UUID
			oldest   *visit
			count    int
		)
		for id, v := range s.visits {
			if v.userID != userID {
				continue
			}
			count++
			if oldest == nil || v.lastSeen.Before(oldest.lastSeen) {
				oldestID, oldest = id, v
			}
		}
		if count < s.perUser {
			return evicted
		}
		delete(s.visits, oldestID)
		evicted++
	}
}

// Get returns the visit's controller if it exists and belongs to user.
func (s *VisitService) Get(id uuid.UUID, user *domain.User) (*meeting.TypeList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visits[id]
	if !ok {
		return nil, ErrVisitNotFound
	}
	if s.expired(v, s.now()) {
		delete(s.visits, id)
		return nil, ErrVisitNotFound
	}

	userID := ""
	if user != nil {
		userID = user.ID
	}
	if v.userID != userID {
		return nil, ErrVisitNotFound
	}

	v.lastSeen = s.now()
	return v.list, nil
}

func (s *VisitService) Discard(id uuid.UUID) {
	s.mu.Lock()
	delete(s.visits, id)
	s.mu.Unlock()
}

func (s *VisitService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visits)
}

// Sweep drops visits idle for longer than ttl and reports how many were dropped.
func (s *VisitService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, v := range s.visits {
		if s.expired(v, now) {
			delete(s.visits, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired visits until ctx is done.
func (s *VisitService) Run(ctx context.Context) {
	const op = "service.visit.run"

	interval := s.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.log.Debug("expired visits removed", slog.String("op", op), slog.Int("count", n))
			}
		}
	}
}

func (s *VisitService) expired(v *visit, now time.Time) bool {
	return s.ttl > 0 && now.Sub(v.lastSeen) > s.ttl
}
