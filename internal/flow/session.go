package flow

import (
	"errors"
	"sync"

	"github.com/Peezy0/Accel1/internal/services"

	"github.com/google/uuid"
)

// ErrUnknownSession 会话不存在
var ErrUnknownSession = errors.New("unknown session")

// Screen 当前显示的页面
type Screen string

const (
	ScreenMenu    Screen = "menu"
	ScreenWelcome Screen = "welcome"
	ScreenOptions Screen = "options"
	ScreenClosed  Screen = "closed"
)

// Session 单个客户端的界面状态：当前页面、项目名称和当前选中的目标。
// 项目名称只保存在内存中，不写库。
type Session struct {
	ID string

	mu          sync.Mutex
	screen      Screen
	programName string
	goal        services.Selection
}

// NewSession 创建停在主菜单的会话
func NewSession() *Session {
	return &Session{
		ID:     uuid.New().String(),
		screen: ScreenMenu,
	}
}

// Screen 当前页面
func (s *Session) Screen() Screen {
	return s.screen
}

// ProgramName 欢迎页录入的项目名称
func (s *Session) ProgramName() string {
	return s.programName
}

// Goal 当前选中的目标
func (s *Session) Goal() services.Selection {
	return s.goal
}

// Store 内存中的会话表
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore 创建会话表
func NewStore() *Store {
	return &Store{sessions: map[string]*Session{}}
}

// Create 新建会话
func (st *Store) Create() *Session {
	s := NewSession()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get 按 id 查找会话
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}

// With 在会话锁内执行 fn，同一会话的操作严格串行
func (st *Store) With(id string, fn func(s *Session) error) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Delete 移除会话，会话不存在时忽略
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len 当前会话数量
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
