package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/domain"
)

// Session holds one viewer's UI state. Sessions live only in memory.
type Session struct {
	ID        string    `json:"id"`
	State     ViewState `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RenderResult is the payload of a session's current view; exactly one of
// Dashboard, Details and KPIs is set.
type RenderResult struct {
	Session   Session           `json:"session"`
	Dashboard *domain.Dashboard `json:"dashboard,omitempty"`
	Details   *DetailsPage      `json:"details,omitempty"`
	KPIs      *domain.TeamKPI   `json:"kpis,omitempty"`
}

// SessionUseCase manages viewer sessions and renders their views
type SessionUseCase struct {
	dashboard *DashboardUseCase
	logger    logger.Logger
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionUseCase creates a session store. Sessions idle for longer than ttl
// are dropped; ttl <= 0 disables expiry.
// Every session returns to the first page when the dataset is reloaded.
func NewSessionUseCase(dashboard *DashboardUseCase, ttl time.Duration, log logger.Logger) *SessionUseCase {
	uc := &SessionUseCase{
		dashboard: dashboard,
		logger:    log.WithFields(map[string]interface{}{"component": "session_usecase"}),
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
	dashboard.OnReload(uc.resetPages)
	return uc
}

// Create starts a session in the initial state
func (uc *SessionUseCase) Create(ctx context.Context) Session {
	now := uc.now()
	s := &Session{
		ID:        uuid.NewString(),
		State:     NewViewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	uc.mu.Lock()
	uc.sessions[s.ID] = s
	uc.mu.Unlock()

	uc.logger.Debug(ctx, "Session created", map[string]interface{}{"session_id": s.ID})
	return *s
}

// Get returns the session with id
func (uc *SessionUseCase) Get(ctx context.Context, id string) (Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.lookup(id)
	if err != nil {
		return Session{}, err
	}
	return *s, nil
}

// Delete ends the session with id
func (uc *SessionUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, err := uc.lookup(id); err != nil {
		return err
	}
	delete(uc.sessions, id)
	return nil
}

// SetFilters replaces the session's filters and resets it to the first page
func (uc *SessionUseCase) SetFilters(ctx context.Context, id string, criteria domain.FilterCriteria) (Session, error) {
	return uc.update(id, func(s ViewState) (ViewState, error) {
		return s.SetFilters(criteria)
	})
}

// ToggleSort selects or flips the session's sort key
func (uc *SessionUseCase) ToggleSort(ctx context.Context, id string, key domain.SortKey) (Session, error) {
	return uc.update(id, func(s ViewState) (ViewState, error) {
		return s.ToggleSort(key), nil
	})
}

// SetPage moves the session to page
func (uc *SessionUseCase) SetPage(ctx context.Context, id string, page int) (Session, error) {
	return uc.update(id, func(s ViewState) (ViewState, error) {
		return s.SetPage(page)
	})
}

// SetView switches the session's visible screen
func (uc *SessionUseCase) SetView(ctx context.Context, id string, view View) (Session, error) {
	return uc.update(id, func(s ViewState) (ViewState, error) {
		return s.SetView(view), nil
	})
}

// Reset returns the session to the initial state
func (uc *SessionUseCase) Reset(ctx context.Context, id string) (Session, error) {
	return uc.update(id, func(s ViewState) (ViewState, error) {
		return s.Reset(), nil
	})
}

// Render computes the payload of the session's current view. A page past the
// end of the filtered data is clamped and the clamped page is stored back.
func (uc *SessionUseCase) Render(ctx context.Context, id string) (RenderResult, error) {
	session, err := uc.Get(ctx, id)
	if err != nil {
		return RenderResult{}, err
	}
	state := session.State

	switch state.View {
	case ViewDetails:
		page, err := uc.dashboard.Details(ctx, state.Filters, state.Sort, state.Page)
		if err != nil {
			return RenderResult{}, err
		}
		if page.Page != state.Page {
			if err := uc.storeClampedPage(id, state, page.Page); err != nil {
				return RenderResult{}, err
			}
			session.State.Page = page.Page
		}
		return RenderResult{Session: session, Details: &page}, nil

	case ViewKPI:
		kpis, err := uc.dashboard.KPIs(ctx, state.Filters)
		if err != nil {
			return RenderResult{}, err
		}
		return RenderResult{Session: session, KPIs: &kpis}, nil

	default:
		dashboard, err := uc.dashboard.Dashboard(ctx, state.Filters)
		if err != nil {
			return RenderResult{}, err
		}
		return RenderResult{Session: session, Dashboard: &dashboard}, nil
	}
}

// storeClampedPage records page for a session rendered from state, unless the
// session changed since then
func (uc *SessionUseCase) storeClampedPage(id string, rendered ViewState, page int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.lookup(id)
	if err != nil {
		return err
	}
	if s.State.Filters != rendered.Filters || s.State.Sort != rendered.Sort || s.State.Page != rendered.Page {
		return nil
	}
	s.State.Page = page
	s.UpdatedAt = uc.now()
	return nil
}

// resetPages moves every live session back to the first page
func (uc *SessionUseCase) resetPages(ctx context.Context) {
	uc.mu.Lock()
	reset := 0
	for _, s := range uc.sessions {
		if s.State.Page != 1 {
			s.State.Page = 1
			reset++
		}
	}
	uc.mu.Unlock()

	if reset > 0 {
		uc.logger.Info(ctx, "Session pages reset after dataset reload", map[string]interface{}{"sessions": reset})
	}
}

// PurgeExpired drops idle sessions and returns how many were removed
func (uc *SessionUseCase) PurgeExpired(ctx context.Context) int {
	if uc.ttl <= 0 {
		return 0
	}

	uc.mu.Lock()
	removed := 0
	for id, s := range uc.sessions {
		if uc.expired(s) {
			delete(uc.sessions, id)
			removed++
		}
	}
	uc.mu.Unlock()

	if removed > 0 {
		uc.logger.Info(ctx, "Expired sessions purged", map[string]interface{}{"removed": removed})
	}
	return removed
}

// StartJanitor purges expired sessions every interval until ctx is done
func (uc *SessionUseCase) StartJanitor(ctx context.Context, interval time.Duration) {
	if uc.ttl <= 0 || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				uc.PurgeExpired(ctx)
			}
		}
	}()
}

// Count returns the number of live sessions
func (uc *SessionUseCase) Count() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.sessions)
}

func (uc *SessionUseCase) update(id string, fn func(ViewState) (ViewState, error)) (Session, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, err := uc.lookup(id)
	if err != nil {
		return Session{}, err
	}

	next, err := fn(s.State)
	if err != nil {
		return Session{}, err
	}
	s.State = next
	s.UpdatedAt = uc.now()
	return *s, nil
}

// lookup must be called with mu held. Expired sessions are removed on access.
func (uc *SessionUseCase) lookup(id string) (*Session, error) {
	s, ok := uc.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if uc.expired(s) {
		delete(uc.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (uc *SessionUseCase) expired(s *Session) bool {
	return uc.ttl > 0 && uc.now().Sub(s.UpdatedAt) > uc.ttl
}
