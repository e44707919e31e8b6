package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/util"
	"hanja_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// levelGradeMap - 급수 문자열을 숫자 등급으로 (8급이 가장 쉬움)
var levelGradeMap = map[string]int{
	"8급": 1, "7급": 2, "6급": 3, "5급": 4,
	"4급": 5, "3급": 6, "2급": 7, "1급": 8,
}

// GradeFromLevel converts "8급" style level names to the numeric grade.
func GradeFromLevel(level string) int {
	return levelGradeMap[level]
}

// LevelFromGrade is the inverse of GradeFromLevel.
func LevelFromGrade(grade int) string {
	for level, g := range levelGradeMap {
		if g == grade {
			return level
		}
	}
	return ""
}

// contentIndex is the immutable, loaded-once view over the database file.
type contentIndex struct {
	source      string // which candidate file won
	byCharacter map[string]*model.HanjaCharacter
	byGrade     map[int][]*model.HanjaCharacter
	ordered     []*model.HanjaCharacter
	categories  []model.Category
}

// ContentRepository replaces the old singleton data manager with an
// explicit, injected lookup service over static JSON content.
type ContentRepository struct {
	cfg config.DataConfig

	mu    sync.RWMutex
	index *contentIndex
}

func NewContentRepository(cfg config.DataConfig) (*ContentRepository, error) {
	r := &ContentRepository{cfg: cfg}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload rebuilds the index from disk. The first readable candidate file
// wins; later divergent variants are reported, not merged.
func (r *ContentRepository) Reload() error {
	var db model.HanjaDatabase
	source := ""
	for _, candidate := range r.cfg.DatabaseFiles {
		if err := util.ReadJSONFile(candidate, &db); err != nil {
			logger.Log.Warn("skipping unreadable hanja database candidate",
				zap.String("file", candidate), zap.Error(err))
			continue
		}
		source = candidate
		break
	}
	if source == "" {
		return fmt.Errorf("%w: no readable candidate among %v", util.ErrContentUnavailable, r.cfg.DatabaseFiles)
	}

	idx := &contentIndex{
		source:      source,
		byCharacter: make(map[string]*model.HanjaCharacter),
		byGrade:     make(map[int][]*model.HanjaCharacter),
	}

	addSection := func(section *model.HanjaSection) {
		if section == nil {
			return
		}
		levelKeys := make([]string, 0, len(section.Levels))
		for k := range section.Levels {
			levelKeys = append(levelKeys, k)
		}
		sort.Strings(levelKeys)
		for _, k := range levelKeys {
			level := section.Levels[k]
			for i := range level.Characters {
				ch := level.Characters[i]
				if ch.Grade == 0 && ch.Level != "" {
					ch.Grade = GradeFromLevel(ch.Level)
				}
				if _, dup := idx.byCharacter[ch.Character]; dup {
					continue
				}
				stored := new(model.HanjaCharacter)
				*stored = ch
				idx.byCharacter[ch.Character] = stored
				idx.byGrade[ch.Grade] = append(idx.byGrade[ch.Grade], stored)
				idx.ordered = append(idx.ordered, stored)
			}
		}
	}
	addSection(&db.Basic)
	addSection(db.Advanced)

	if r.cfg.CategoriesFile != "" {
		var wrapper struct {
			Categories []model.Category `json:"categories"`
		}
		if err := util.ReadJSONFile(r.cfg.CategoriesFile, &wrapper); err != nil {
			logger.Log.Warn("categories file unreadable", zap.Error(err))
		} else {
			idx.categories = wrapper.Categories
		}
	}

	r.warnDivergence(source, len(idx.byCharacter))

	r.mu.Lock()
	r.index = idx
	r.mu.Unlock()

	logger.Log.Info("hanja database loaded",
		zap.String("source", source),
		zap.Int("characters", len(idx.byCharacter)),
		zap.Int("categories", len(idx.categories)))
	return nil
}

// warnDivergence flags the known inconsistency between the legacy database
// variants instead of guessing which is authoritative.
func (r *ContentRepository) warnDivergence(chosen string, chosenCount int) {
	for _, candidate := range r.cfg.DatabaseFiles {
		if candidate == chosen {
			continue
		}
		var other model.HanjaDatabase
		if err := util.ReadJSONFile(candidate, &other); err != nil {
			continue
		}
		count := 0
		for _, lvl := range other.Basic.Levels {
			count += len(lvl.Characters)
		}
		if other.Advanced != nil {
			for _, lvl := range other.Advanced.Levels {
				count += len(lvl.Characters)
			}
		}
		if count != chosenCount {
			logger.Log.Warn("hanja database variants diverge",
				zap.String("chosen", chosen),
				zap.Int("chosen_characters", chosenCount),
				zap.String("variant", candidate),
				zap.Int("variant_characters", count))
		}
	}
}

func (r *ContentRepository) snapshot() *contentIndex {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

// Source reports which database file backs the current index.
func (r *ContentRepository) Source() string {
	return r.snapshot().source
}

// ByCharacter looks one character up; nil when unknown.
func (r *ContentRepository) ByCharacter(character string) *model.HanjaCharacter {
	return r.snapshot().byCharacter[character]
}

// All returns every character in level order.
func (r *ContentRepository) All() []*model.HanjaCharacter {
	return r.snapshot().ordered
}

// ByGrade returns the characters of one numeric grade.
func (r *ContentRepository) ByGrade(grade int) []*model.HanjaCharacter {
	return r.snapshot().byGrade[grade]
}

// Categories returns the category tree, possibly empty.
func (r *ContentRepository) Categories() []model.Category {
	return r.snapshot().categories
}

// Count - 전체 한자 수
func (r *ContentRepository) Count() int {
	return len(r.snapshot().byCharacter)
}

// StrokeData returns the raw stroke JSON for one character, or nil when no
// stroke file exists. The payload is passed through untouched.
func (r *ContentRepository) StrokeData(character string) (json.RawMessage, error) {
	if r.cfg.StrokesDir == "" {
		return nil, nil
	}
	path := filepath.Join(r.cfg.StrokesDir, character+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
