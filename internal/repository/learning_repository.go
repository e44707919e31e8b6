// Package repository holds the data-access layer. Learning state is one
// JSON document per user; content is a set of static JSON files loaded into
// an immutable in-memory index.
package repository

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/util"
)

// LearningRepository persists UserLearningData as data/learning/{userId}.json.
//
// A per-user mutex serializes read-modify-write cycles inside this process;
// writes go through a temp-file rename. Concurrent writers in *other*
// processes still race last-write-wins — the deployment is single-instance.
type LearningRepository struct {
	Dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLearningRepository(dir string) *LearningRepository {
	return &LearningRepository{
		Dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *LearningRepository) path(userID string) string {
	return filepath.Join(r.Dir, userID+".json")
}

func (r *LearningRepository) userLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[userID] = l
	}
	return l
}

// Load returns the user document, or nil when the user has never studied.
func (r *LearningRepository) Load(userID string) (*model.UserLearningData, error) {
	var data model.UserLearningData
	err := util.ReadJSONFile(r.path(userID), &data)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if data.Characters == nil {
		data.Characters = make(map[string]*model.HanjaLearningRecord)
	}
	if data.Levels == nil {
		data.Levels = make(map[string]*model.LevelProgress)
	}
	return &data, nil
}

// LoadOrCreate returns the user document, seeding a default one lazily on
// first contact.
func (r *LearningRepository) LoadOrCreate(userID string, now time.Time) (*model.UserLearningData, error) {
	data, err := r.Load(userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = model.NewUserLearningData(userID, now)
	}
	return data, nil
}

// Save overwrites the whole document.
func (r *LearningRepository) Save(data *model.UserLearningData) error {
	return util.WriteJSONFileAtomic(r.path(data.UserID), data)
}

// Update runs fn under the user's mutex on a freshly loaded (or seeded)
// document and persists the result.
func (r *LearningRepository) Update(userID string, now time.Time, fn func(*model.UserLearningData) error) (*model.UserLearningData, error) {
	l := r.userLock(userID)
	l.Lock()
	defer l.Unlock()

	data, err := r.LoadOrCreate(userID, now)
	if err != nil {
		return nil, err
	}
	if err := fn(data); err != nil {
		return nil, err
	}
	if err := r.Save(data); err != nil {
		return nil, err
	}
	return data, nil
}

// ListUserFiles returns every persisted user document path, for snapshots.
func (r *LearningRepository) ListUserFiles() ([]string, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		files = append(files, filepath.Join(r.Dir, e.Name()))
	}
	return files, nil
}
