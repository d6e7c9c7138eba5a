package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/hivemind/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockSubscriberRepository implements secondary.SubscriberRepository for testing.
type mockSubscriberRepository struct {
	mu          sync.Mutex
	subscribers map[string]*secondary.SubscriberRecord
	findErr     error
	createErr   error
	listErr     error
}

func newMockSubscriberRepository() *mockSubscriberRepository {
	return &mockSubscriberRepository{subscribers: make(map[string]*secondary.SubscriberRecord)}
}

func (m *mockSubscriberRepository) FindByIdentity(ctx context.Context, identity string) (*secondary.SubscriberRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribers[identity], nil
}

func (m *mockSubscriberRepository) CreateIfAbsent(ctx context.Context, identity string) (*secondary.SubscriberRecord, bool, error) {
	if m.createErr != nil {
		return nil, false, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.subscribers[identity]; ok {
		return existing, false, nil
	}
	record := &secondary.SubscriberRecord{Identity: identity, Active: true}
	m.subscribers[identity] = record
	return record, true, nil
}

func (m *mockSubscriberRepository) ListActive(ctx context.Context) ([]*secondary.SubscriberRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var subs []*secondary.SubscriberRecord
	for _, s := range m.subscribers {
		if s.Active {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

// mockProblemRepository implements secondary.ProblemRepository for testing.
type mockProblemRepository struct {
	problems  map[int64]*secondary.ProblemRecord
	nextID    int64
	createErr error
}

func newMockProblemRepository() *mockProblemRepository {
	return &mockProblemRepository{problems: make(map[int64]*secondary.ProblemRecord)}
}

func (m *mockProblemRepository) Create(ctx context.Context, problem *secondary.ProblemRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, p := range m.problems {
		if p.Name == problem.Name {
			return fmt.Errorf("problem %q: %w", problem.Name, secondary.ErrDuplicateProblemName)
		}
	}
	m.nextID++
	problem.ID = m.nextID
	problem.Active = true
	m.problems[problem.ID] = problem
	return nil
}

func (m *mockProblemRepository) GetByID(ctx context.Context, id int64) (*secondary.ProblemRecord, error) {
	if p, ok := m.problems[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("problem %d not found", id)
}

func (m *mockProblemRepository) List(ctx context.Context) ([]*secondary.ProblemRecord, error) {
	var out []*secondary.ProblemRecord
	for id := m.nextID; id >= 1; id-- {
		if p, ok := m.problems[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockQueue implements secondary.ContributionQueue for testing.
type mockQueue struct {
	mu      sync.Mutex
	items   []*secondary.QueuedContribution
	nextID  int64
	pushErr error
	popErr  error
}

func newMockQueue() *mockQueue {
	return &mockQueue{}
}

func (m *mockQueue) Push(ctx context.Context, item *secondary.QueuedContribution) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	item.ID = m.nextID
	m.items = append(m.items, item)
	return nil
}

func (m *mockQueue) PopBlocking(ctx context.Context, timeout time.Duration) (*secondary.QueuedContribution, bool, error) {
	if m.popErr != nil {
		return nil, false, m.popErr
	}
	m.mu.Lock()
	if len(m.items) == 0 {
		m.mu.Unlock()
		// Mirror the real queue: an empty pop waits out (a slice of) the
		// timeout instead of returning instantly.
		wait := timeout
		if wait > 10*time.Millisecond {
			wait = 10 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(wait):
		}
		return nil, false, nil
	}
	item := m.items[0]
	m.items = m.items[1:]
	m.mu.Unlock()
	return item, true, nil
}

func (m *mockQueue) Len(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items), nil
}

// mockClarifier implements secondary.Clarifier for testing.
type mockClarifier struct {
	result string
	err    error
	calls  int
}

func (m *mockClarifier) Clarify(ctx context.Context, problemRef, rawText string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if m.result != "" {
		return m.result, nil
	}
	return "clarified: " + rawText, nil
}

// mockNotifier implements secondary.Notifier for testing.
type mockNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
}

type sentMessage struct {
	to   string
	body string
}

func (m *mockNotifier) Send(ctx context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{to: to, body: body})
	if m.sendErr != nil {
		return m.sendErr
	}
	return nil
}

func (m *mockNotifier) messages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// mockEvaluator implements secondary.FeasibilityEvaluator for testing.
type mockEvaluator struct {
	feasible bool
	err      error
}

func (m *mockEvaluator) Evaluate(ctx context.Context, item *secondary.QueuedContribution) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.feasible, nil
}

var errStorageDown = errors.New("storage down")
