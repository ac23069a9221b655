package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
	"yoga_backend/internal/feature/session/domain/entity"
	teacherentity "yoga_backend/internal/feature/teacher/domain/entity"
)

// mockSessionRepository はSessionRepositoryのモック実装です。
type mockSessionRepository struct {
	FindAllFunc           func(ctx context.Context) ([]entity.Session, error)
	FindByIDFunc          func(ctx context.Context, id uint) (*entity.Session, error)
	CreateFunc            func(ctx context.Context, s *entity.Session) error
	UpdateFunc            func(ctx context.Context, s *entity.Session) error
	DeleteFunc            func(ctx context.Context, id uint) error
	AddParticipantFunc    func(ctx context.Context, sessionID, userID uint) error
	RemoveParticipantFunc func(ctx context.Context, sessionID, userID uint) error

	createCalls int
	updateCalls int
	deleteCalls int
	addCalls    int
	removeCalls int
}

func (m *mockSessionRepository) FindAll(ctx context.Context) ([]entity.Session, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id uint) (*entity.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	s.ID = 1
	return nil
}

func (m *mockSessionRepository) Update(ctx context.Context, s *entity.Session) error {
	m.updateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) Delete(ctx context.Context, id uint) error {
	m.deleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) AddParticipant(ctx context.Context, sessionID, userID uint) error {
	m.addCalls++
	if m.AddParticipantFunc != nil {
		return m.AddParticipantFunc(ctx, sessionID, userID)
	}
	return nil
}

func (m *mockSessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID uint) error {
	m.removeCalls++
	if m.RemoveParticipantFunc != nil {
		return m.RemoveParticipantFunc(ctx, sessionID, userID)
	}
	return nil
}

// mockUserFinder はUserFinderのモック実装です。
type mockUserFinder struct {
	FindByIDFunc func(ctx context.Context, id uint) (*authentity.User, error)

	calls int
}

func (m *mockUserFinder) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	m.calls++
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &authentity.User{ID: id}, nil
}

// mockTeacherFinder はTeacherFinderのモック実装です。
type mockTeacherFinder struct {
	FindByIDFunc func(ctx context.Context, id uint) (*teacherentity.Teacher, error)
}

func (m *mockTeacherFinder) FindByID(ctx context.Context, id uint) (*teacherentity.Teacher, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &teacherentity.Teacher{ID: id}, nil
}

func sessionWith(id uint, participants ...uint) func(ctx context.Context, sid uint) (*entity.Session, error) {
	return func(ctx context.Context, sid uint) (*entity.Session, error) {
		if sid != id {
			return nil, ErrSessionNotFound
		}
		s := &entity.Session{ID: id, Name: "Morning flow"}
		for _, p := range participants {
			s.Users = append(s.Users, authentity.User{ID: p})
		}
		return s, nil
	}
}

var sessionDate = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func TestSessionUsecase_Create(t *testing.T) {
	in := SessionInput{Name: "Morning flow", Date: sessionDate, TeacherID: 2, Description: "Gentle vinyasa"}

	t.Run("stores a session without participants", func(t *testing.T) {
		var stored *entity.Session
		repo := &mockSessionRepository{
			CreateFunc: func(ctx context.Context, s *entity.Session) error {
				s.ID = 10
				stored = s
				return nil
			},
		}
		uc := NewSessionUsecase(repo, &mockUserFinder{}, &mockTeacherFinder{})

		got, err := uc.Create(context.Background(), in)

		require.NoError(t, err)
		assert.Equal(t, uint(10), got.ID)
		require.NotNil(t, stored.TeacherID)
		assert.Equal(t, uint(2), *stored.TeacherID)
		assert.Equal(t, "Gentle vinyasa", stored.Description)
		assert.Equal(t, sessionDate, stored.Date)
		assert.Empty(t, stored.Users)
	})

	t.Run("unknown teacher", func(t *testing.T) {
		repo := &mockSessionRepository{}
		teachers := &mockTeacherFinder{
			FindByIDFunc: func(ctx context.Context, id uint) (*teacherentity.Teacher, error) { return nil, ErrTeacherNotFound },
		}
		uc := NewSessionUsecase(repo, &mockUserFinder{}, teachers)

		_, err := uc.Create(context.Background(), in)

		assert.ErrorIs(t, err, ErrTeacherNotFound)
		assert.Zero(t, repo.createCalls)
	})

	t.Run("teacher lookup failure is not a 4xx sentinel", func(t *testing.T) {
		dbErr := errors.New("db down")
		teachers := &mockTeacherFinder{
			FindByIDFunc: func(ctx context.Context, id uint) (*teacherentity.Teacher, error) { return nil, dbErr },
		}
		uc := NewSessionUsecase(&mockSessionRepository{}, &mockUserFinder{}, teachers)

		_, err := uc.Create(context.Background(), in)

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrTeacherNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockSessionRepository{
			CreateFunc: func(ctx context.Context, s *entity.Session) error { return errors.New("insert failed") },
		}
		uc := NewSessionUsecase(repo, &mockUserFinder{}, &mockTeacherFinder{})

		_, err := uc.Create(context.Background(), in)

		assert.ErrorContains(t, err, "failed to create session")
	})
}

func TestSessionUsecase_Update(t *testing.T) {
	in := SessionInput{Name: "Evening yin", Date: sessionDate, TeacherID: 3, Description: "Slow"}

	t.Run("overwrites fields and keeps participants", func(t *testing.T) {
		var updated *entity.Session
		repo := &mockSessionRepository{
			FindByIDFunc: sessionWith(1, 7, 8),
			UpdateFunc: func(ctx context.Context, s *entity.Session) error {
				updated = s
				return nil
			},
		}
		uc := NewSessionUsecase(repo, &mockUserFinder{}, &mockTeacherFinder{})

		got, err := uc.Update(context.Background(), 1, in)

		require.NoError(t, err)
		assert.Same(t, updated, got)
		assert.Equal(t, "Evening yin", got.Name)
		assert.Equal(t, uint(3), *got.TeacherID)
		assert.Equal(t, []uint{7, 8}, got.ParticipantIDs())
	})

	t.Run("unknown session", func(t *testing.T) {
		repo := &mockSessionRepository{FindByIDFunc: sessionWith(1)}
		uc := NewSessionUsecase(repo, &mockUserFinder{}, &mockTeacherFinder{})

		_, err := uc.Update(context.Background(), 99, in)

		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Zero(t, repo.updateCalls)
	})

	t.Run("unknown teacher", func(t *testing.T) {
		repo := &mockSessionRepository{FindByIDFunc: sessionWith(1)}
		teachers := &mockTeacherFinder{
			FindByIDFunc: func(ctx context.Context, id uint) (*teacherentity.Teacher, error) { return nil, ErrTeacherNotFound },
		}
		uc := NewSessionUsecase(repo, &mockUserFinder{}, teachers)

		_, err := uc.Update(context.Background(), 1, in)

		assert.ErrorIs(t, err, ErrTeacherNotFound)
		assert.Zero(t, repo.updateCalls)
	})
}

func TestSessionUsecase_Delete(t *testing.T) {
	t.Run("existing session", func(t *testing.T) {
		repo := &mockSessionRepository{FindByIDFunc: sessionWith(1)}
		uc := NewSessionUsecase(repo, &mockUserFinder{}, &mockTeacherFinder{})

		require.NoError(t, uc.Delete(context.Background(), 1))
		assert.Equal(t, 1, repo.deleteCalls)
	})

	t.Run("unknown session", func(t *testing.T) {
		repo := &mockSessionRepository{FindByIDFunc: sessionWith(1)}
		uc := NewSessionUsecase(repo, &mockUserFinder{}, &mockTeacherFinder{})

		assert.ErrorIs(t, uc.Delete(context.Background(), 2), ErrSessionNotFound)
		assert.Zero(t, repo.deleteCalls)
	})
}

func TestSessionUsecase_Participate(t *testing.T) {
	tests := []struct {
		name          string
		sessionID     uint
		userID        uint
		participants  []uint
		userErr       error
		wantErr       error
		wantUserCalls int
		wantAdd       int
	}{
		{name: "joins session", sessionID: 1, userID: 5, wantUserCalls: 1, wantAdd: 1},
		{name: "session missing is checked before user", sessionID: 2, userID: 5, userErr: ErrUserNotFound, wantErr: ErrSessionNotFound},
		{name: "user missing", sessionID: 1, userID: 6, userErr: ErrUserNotFound, wantErr: ErrUserNotFound, wantUserCalls: 1},
		{name: "already participating", sessionID: 1, userID: 5, participants: []uint{5}, wantErr: ErrAlreadyParticipating, wantUserCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSessionRepository{FindByIDFunc: sessionWith(1, tt.participants...)}
			users := &mockUserFinder{
				FindByIDFunc: func(ctx context.Context, id uint) (*authentity.User, error) {
					if tt.userErr != nil {
						return nil, tt.userErr
					}
					return &authentity.User{ID: id}, nil
				},
			}
			uc := NewSessionUsecase(repo, users, &mockTeacherFinder{})

			err := uc.Participate(context.Background(), tt.sessionID, tt.userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantUserCalls, users.calls)
			assert.Equal(t, tt.wantAdd, repo.addCalls)
		})
	}
}

func TestSessionUsecase_NoLongerParticipate(t *testing.T) {
	tests := []struct {
		name         string
		sessionID    uint
		participants []uint
		wantErr      error
		wantRemove   int
	}{
		{name: "leaves session", sessionID: 1, participants: []uint{5, 6}, wantRemove: 1},
		{name: "session missing", sessionID: 3, wantErr: ErrSessionNotFound},
		{name: "not participating", sessionID: 1, participants: []uint{6}, wantErr: ErrNotParticipating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSessionRepository{FindByIDFunc: sessionWith(1, tt.participants...)}
			users := &mockUserFinder{}
			uc := NewSessionUsecase(repo, users, &mockTeacherFinder{})

			err := uc.NoLongerParticipate(context.Background(), tt.sessionID, 5)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Zero(t, users.calls, "user row is never looked up when leaving")
			assert.Equal(t, tt.wantRemove, repo.removeCalls)
		})
	}
}

// memSessionRepository はmutexで保護されたインメモリのSessionRepositoryです。並行テストで使用します。
type memSessionRepository struct {
	mu      sync.Mutex
	members map[uint]map[uint]struct{}
}

func (m *memSessionRepository) FindAll(ctx context.Context) ([]entity.Session, error) {
	return nil, nil
}

func (m *memSessionRepository) FindByID(ctx context.Context, id uint) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.members[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s := &entity.Session{ID: id}
	for uid := range set {
		s.Users = append(s.Users, authentity.User{ID: uid})
	}
	return s, nil
}

func (m *memSessionRepository) Create(ctx context.Context, s *entity.Session) error { return nil }
func (m *memSessionRepository) Update(ctx context.Context, s *entity.Session) error { return nil }
func (m *memSessionRepository) Delete(ctx context.Context, id uint) error           { return nil }

func (m *memSessionRepository) AddParticipant(ctx context.Context, sessionID, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[sessionID][userID] = struct{}{}
	return nil
}

func (m *memSessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.members[sessionID], userID)
	return nil
}

// staticUserFinder は状態を持たないUserFinderで、並行テスト用です。
type staticUserFinder struct{}

func (staticUserFinder) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	return &authentity.User{ID: id}, nil
}

// TestSessionUsecase_ConcurrentParticipation は異なるユーザーの同時参加がすべて反映され、goroutineがリークしないことを検証します。
func TestSessionUsecase_ConcurrentParticipation(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &memSessionRepository{members: map[uint]map[uint]struct{}{1: {}}}
	uc := NewSessionUsecase(repo, staticUserFinder{}, &mockTeacherFinder{})

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			errs <- uc.Participate(context.Background(), 1, userID)
		}(uint(i))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	s, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, s.Users, n)
}

// barrierSessionRepository は全員がFindByIDで読み終えるまで応答を止め、読み取りと書き込みの間の競合を再現します。
type barrierSessionRepository struct {
	*memSessionRepository
	barrier  sync.WaitGroup
	addCalls atomic.Int32
}

func (b *barrierSessionRepository) FindByID(ctx context.Context, id uint) (*entity.Session, error) {
	s, err := b.memSessionRepository.FindByID(ctx, id)
	b.barrier.Done()
	b.barrier.Wait()
	return s, err
}

func (b *barrierSessionRepository) AddParticipant(ctx context.Context, sessionID, userID uint) error {
	b.addCalls.Add(1)
	return b.memSessionRepository.AddParticipant(ctx, sessionID, userID)
}

// TestSessionUsecase_ConcurrentParticipation_SameUser は同じユーザーの同時参加が既知の制限どおり、
// 全リクエスト成功かつ参加行は1件になることを検証します。
// 参加確認と追加は1トランザクションではないため、どのリクエストも未参加のスナップショットを見ます。
func TestSessionUsecase_ConcurrentParticipation_SameUser(t *testing.T) {
	defer goleak.VerifyNone(t)

	const n = 2
	repo := &barrierSessionRepository{
		memSessionRepository: &memSessionRepository{members: map[uint]map[uint]struct{}{1: {}}},
	}
	repo.barrier.Add(n)
	uc := NewSessionUsecase(repo, staticUserFinder{}, &mockTeacherFinder{})

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- uc.Participate(context.Background(), 1, 7)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "both requests pass the membership check")
	}
	assert.EqualValues(t, n, repo.addCalls.Load())

	s, err := repo.memSessionRepository.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, s.Users, 1, "the join row is written once")
	assert.Equal(t, uint(7), s.Users[0].ID)
}
