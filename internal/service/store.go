package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/naver-search/internal/cache/memory"
	"github.com/kitbuilder587/naver-search/internal/metrics"
)

// SessionStore - живые сессии клиентов в памяти процесса.
// Сессия живет TTL с последнего обращения, ничего не сохраняется на диск.
type SessionStore struct {
	sessions *memory.Cache[*Session]
	searcher Searcher
	ttl      time.Duration
	opts     []SessionOption
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

type SessionStoreConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

func NewSessionStore(searcher Searcher, cfg SessionStoreConfig, logger *zap.Logger, m *metrics.Metrics, opts ...SessionOption) *SessionStore {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	st := &SessionStore{
		searcher: searcher,
		ttl:      cfg.TTL,
		opts:     opts,
		logger:   logger,
		metrics:  m,
	}
	st.sessions = memory.New[*Session](
		memory.WithCleanupInterval[*Session](cfg.CleanupInterval),
		memory.WithEvictHook(func(key string, s *Session) {
			s.Close()
			st.logger.Debug("session expired", zap.String("session", key))
			st.reportActive()
		}),
	)
	return st
}

// Get возвращает сессию по ключу, создавая пустую при необходимости
func (st *SessionStore) Get(key string) *Session {
	s, existed := st.sessions.GetOrCreate(key, st.ttl, func() *Session {
		return NewSession(st.searcher, st.opts...)
	})
	if !existed {
		st.logger.Debug("session created", zap.String("session", key))
		st.reportActive()
	}
	return s
}

func (st *SessionStore) Delete(key string) {
	if s, ok := st.sessions.Get(key); ok {
		s.Close()
	}
	st.sessions.Delete(key)
	st.reportActive()
}

func (st *SessionStore) Len() int {
	return st.sessions.Len()
}

func (st *SessionStore) Stop() {
	st.sessions.Stop()
}

func (st *SessionStore) reportActive() {
	if st.metrics != nil {
		st.metrics.SetActiveSessions(st.sessions.Len())
	}
}
