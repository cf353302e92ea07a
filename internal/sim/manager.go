package sim

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/logging"
)

// Factory builds a fresh simulation for a topic.
type Factory func(topic string) Simulation

// Manager keeps one independently scheduled session per open topic.
type Manager struct {
	factory Factory
	opts    []Option
	logger  logging.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(factory Factory, logger logging.Logger, opts ...Option) *Manager {
	return &Manager{
		factory:  factory,
		opts:     opts,
		logger:   logging.OrNoop(logger),
		sessions: make(map[string]*Session),
	}
}

// Open returns the running session for topic, creating and starting one if
// needed.
func (m *Manager) Open(topic string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[topic]; ok {
		if !s.Running() && s.Err() == nil {
			if err := s.Start(); err != nil && !errors.Is(err, dynamo.ErrSchedulerRunning) {
				return nil, err
			}
		}
		return s, nil
	}

	s := NewSession(topic, m.factory(topic), m.opts...)
	if err := s.Start(); err != nil {
		return nil, fmt.Errorf("start session %s: %w", topic, err)
	}
	m.sessions[topic] = s
	m.logger.Info(context.Background(), "session opened", logging.String("topic", topic), logging.String("kind", s.Kind().String()))
	return s, nil
}

func (m *Manager) Get(topic string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[topic]
	return s, ok
}

// Close stops and forgets the session for topic.
func (m *Manager) Close(topic string) error {
	m.mu.Lock()
	s, ok := m.sessions[topic]
	delete(m.sessions, topic)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", dynamo.ErrSessionNotFound, topic)
	}
	s.Stop()
	m.logger.Info(context.Background(), "session closed", logging.String("topic", topic))
	return nil
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Stop()
		}(s)
	}
	wg.Wait()
}

// Topics lists open topics in sorted order.
func (m *Manager) Topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	topics := make([]string, 0, len(m.sessions))
	for t := range m.sessions {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}
