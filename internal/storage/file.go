package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/exercisetracker/internal"
)

type FileStorage struct {
	users          map[string]*internal.User       // id -> User
	usernameIndex  map[string]*internal.User       // username -> User
	userOrder      []*internal.User                // creation order
	exercises      []*internal.Exercise            // insertion order
	userExercises  map[string][]*internal.Exercise // userID -> exercises, insertion order
	mu             sync.RWMutex
	usersFile      string
	exercisesFile  string
	saveUsersChan  chan struct{}
	saveExChan     chan struct{}
	shutdownChan   chan struct{}
	saveUsersDelay time.Duration
	saveExDelay    time.Duration
	closeOnce      sync.Once
	wg             sync.WaitGroup
	logger         internal.Logger
}

func NewFileStorage(usersFile, exercisesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:          make(map[string]*internal.User),
		usernameIndex:  make(map[string]*internal.User),
		userExercises:  make(map[string][]*internal.Exercise),
		usersFile:      usersFile,
		exercisesFile:  exercisesFile,
		saveUsersChan:  make(chan struct{}, 1),
		saveExChan:     make(chan struct{}, 1),
		shutdownChan:   make(chan struct{}),
		saveUsersDelay: 500 * time.Millisecond,
		saveExDelay:    500 * time.Millisecond,
		logger:         logger,
	}

	for _, path := range []string{usersFile, exercisesFile} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			logger.Errorf("storage: failed to create data directory for %s: %v", path, err)
			return nil, err
		}
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadExercises(); err != nil {
		logger.Errorf("storage: failed to load exercises: %v", err)
		return nil, err
	}

	s.wg.Add(2)
	go s.saveWorker(s.saveUsersChan, s.saveUsersDelay, "users", s.saveUsers)
	go s.saveWorker(s.saveExChan, s.saveExDelay, "exercises", s.saveExercises)

	return s, nil
}

func decodeJSONFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	var users []*internal.User
	if err := decodeJSONFile(s.usersFile, &users); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
		s.usernameIndex[u.Username] = u
		s.userOrder = append(s.userOrder, u)
	}
	return nil
}

func (s *FileStorage) loadExercises() error {
	var exercises []*internal.Exercise
	if err := decodeJSONFile(s.exercisesFile, &exercises); err != nil {
		return err
	}

	// Saved files are already in insertion order; the stable sort only
	// matters for hand-edited files.
	sort.SliceStable(exercises, func(i, j int) bool {
		return exercises[i].CreatedAt.Before(exercises[j].CreatedAt)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range exercises {
		s.exercises = append(s.exercises, ex)
		s.userExercises[ex.UserID] = append(s.userExercises[ex.UserID], ex)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, len(s.userOrder))
	copy(users, s.userOrder)
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveExercises() error {
	s.mu.RLock()
	exercises := make([]*internal.Exercise, len(s.exercises))
	copy(exercises, s.exercises)
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.exercisesFile, exercises)
}

// saveWorker batches writes: the first signal arms the timer and later signals
// ride along, so a save lands at most delay after the first pending change.
func (s *FileStorage) saveWorker(signal <-chan struct{}, delay time.Duration, name string, save func() error) {
	defer s.wg.Done()
	timer := time.NewTimer(delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	armed := false

	for {
		select {
		case <-signal:
			if !armed {
				timer.Reset(delay)
				armed = true
			}
		case <-timer.C:
			armed = false
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		close(s.shutdownChan)
		s.wg.Wait()
		if err = s.saveUsers(); err != nil {
			return
		}
		err = s.saveExercises()
	})
	return err
}

// --- UserRepository ---
func (s *FileStorage) InsertUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernameIndex[user.Username]; ok {
		return internal.ErrUsernameTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	u := *user
	s.users[u.ID] = &u
	s.usernameIndex[u.Username] = &u
	s.userOrder = append(s.userOrder, &u)
	notify(s.saveUsersChan)
	return nil
}

func (s *FileStorage) FindUserByID(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *FileStorage) FindUserByUsername(ctx context.Context, username string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usernameIndex[username]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *FileStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]internal.User, len(s.userOrder))
	for i, u := range s.userOrder {
		users[i] = *u
	}
	return users, nil
}

// --- ExerciseRepository ---
func (s *FileStorage) InsertExercise(ctx context.Context, ex *internal.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}
	e := *ex
	s.exercises = append(s.exercises, &e)
	s.userExercises[e.UserID] = append(s.userExercises[e.UserID], &e)
	notify(s.saveExChan)
	return nil
}

func (s *FileStorage) FindExercises(ctx context.Context, f ExerciseFilter) ([]internal.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []internal.Exercise{}
	for _, ex := range s.userExercises[f.UserID] {
		if !f.matches(ex) {
			continue
		}
		out = append(out, *ex)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// --- Compile-time assertions ---
var _ Store = (*FileStorage)(nil)
