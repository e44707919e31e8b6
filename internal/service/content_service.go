package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const searchCacheKeyPrefix = "hanja:search:"
const searchCacheTTL = 12 * time.Hour

// SearchOptions mirror the fields the search inspects.
type SearchOptions struct {
	SearchCharacter     bool
	SearchPronunciation bool
	SearchMeaning       bool
	IncludeExamples     bool
}

// DefaultSearchOptions 문자/발음/의미 검색, 예문 제외
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		SearchCharacter:     true,
		SearchPronunciation: true,
		SearchMeaning:       true,
	}
}

// ContentService exposes lookups over the immutable content index. Search
// results are cached in redis when available, else in a process-local map.
// Neither cache evicts by itself; the content set is small and static.
type ContentService struct {
	ContentRepo *repository.ContentRepository
	Redis       *redis.Client // nil when disabled

	memCache sync.Map // query key -> []*model.HanjaCharacter
}

func NewContentService(contentRepo *repository.ContentRepository, rdb *redis.Client) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		Redis:       rdb,
	}
}

// Get returns one character's content entry, or nil.
func (s *ContentService) Get(character string) *model.HanjaCharacter {
	return s.ContentRepo.ByCharacter(character)
}

// ByGrade 숫자 등급별 목록
func (s *ContentService) ByGrade(grade int) []*model.HanjaCharacter {
	return s.ContentRepo.ByGrade(grade)
}

// Categories 카테고리 트리
func (s *ContentService) Categories() []model.Category {
	return s.ContentRepo.Categories()
}

// StrokeData passes the per-character stroke JSON through.
func (s *ContentService) StrokeData(character string) (json.RawMessage, error) {
	return s.ContentRepo.StrokeData(character)
}

// List returns one page of characters, optionally filtered by grade
// (0 = all). Pages start at 1.
func (s *ContentService) List(grade, page, limit int) ([]*model.HanjaCharacter, model.Pagination) {
	var all []*model.HanjaCharacter
	if grade > 0 {
		all = s.ContentRepo.ByGrade(grade)
	} else {
		all = s.ContentRepo.All()
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total := len(all)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return all[start:end], model.Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Search runs a substring match over character, pronunciation and meaning
// (and optionally example words), consulting the cache first.
func (s *ContentService) Search(ctx context.Context, query string, opts SearchOptions) []*model.HanjaCharacter {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*model.HanjaCharacter{}
	}

	key := cacheKey(query, opts)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached
	}

	results := make([]*model.HanjaCharacter, 0)
	for _, ch := range s.ContentRepo.All() {
		if matches(ch, query, opts) {
			results = append(results, ch)
		}
	}

	s.cacheSet(ctx, key, results)
	return results
}

func matches(ch *model.HanjaCharacter, term string, opts SearchOptions) bool {
	if opts.SearchCharacter && strings.Contains(ch.Character, term) {
		return true
	}
	if opts.SearchPronunciation && strings.Contains(strings.ToLower(ch.Pronunciation), term) {
		return true
	}
	if opts.SearchMeaning && strings.Contains(strings.ToLower(ch.Meaning), term) {
		return true
	}
	if opts.IncludeExamples {
		for _, ex := range ch.Examples {
			if strings.Contains(ex.Word, term) ||
				strings.Contains(strings.ToLower(ex.Meaning), term) ||
				strings.Contains(strings.ToLower(ex.Pronunciation), term) {
				return true
			}
		}
	}
	return false
}

func cacheKey(query string, opts SearchOptions) string {
	var b strings.Builder
	b.WriteString(searchCacheKeyPrefix)
	b.WriteString(query)
	for _, flag := range []bool{opts.SearchCharacter, opts.SearchPronunciation, opts.SearchMeaning, opts.IncludeExamples} {
		if flag {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (s *ContentService) cacheGet(ctx context.Context, key string) ([]*model.HanjaCharacter, bool) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, key).Result()
		if err == redis.Nil {
			return nil, false
		}
		if err != nil {
			logger.Log.Warn("search cache read failed", zap.Error(err))
			return nil, false
		}
		var results []*model.HanjaCharacter
		if err := json.Unmarshal([]byte(val), &results); err != nil {
			return nil, false
		}
		return results, true
	}

	if v, ok := s.memCache.Load(key); ok {
		return v.([]*model.HanjaCharacter), true
	}
	return nil, false
}

func (s *ContentService) cacheSet(ctx context.Context, key string, results []*model.HanjaCharacter) {
	if s.Redis != nil {
		payload, err := json.Marshal(results)
		if err != nil {
			return
		}
		if err := s.Redis.Set(ctx, key, payload, searchCacheTTL).Err(); err != nil {
			logger.Log.Warn("search cache write failed", zap.Error(err))
		}
		return
	}

	s.memCache.Store(key, results)
}

// ClearSearchCache drops cached results after a content reload.
func (s *ContentService) ClearSearchCache(ctx context.Context) {
	if s.Redis != nil {
		iter := s.Redis.Scan(ctx, 0, searchCacheKeyPrefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			s.Redis.Del(ctx, iter.Val())
		}
		return
	}

	s.memCache.Range(func(k, _ interface{}) bool {
		s.memCache.Delete(k)
		return true
	})
}
