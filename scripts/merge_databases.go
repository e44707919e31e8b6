// 한자 데이터베이스 변형 파일 병합 스크립트
//
// 저장소에는 역사적으로 갈라진 데이터베이스 변형(main/fixed/backup)이
// 공존한다. 서버는 첫 번째로 읽히는 파일만 사용하므로, 이 스크립트로
// 변형들을 하나의 파일로 병합한 뒤 결과를 검토하고 main으로 교체한다.
//
// 용법: go run scripts/merge_databases.go [-out data/hanja_database_merged.json]

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"hanja_edu_backend/internal/model"

	"gopkg.in/yaml.v3"
)

type dataSection struct {
	Data struct {
		DatabaseFiles []string `yaml:"database_files"`
	} `yaml:"data"`
}

func main() {
	out := flag.String("out", "data/hanja_database_merged.json", "병합 결과 출력 경로")
	flag.Parse()

	raw, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("설정 파일을 읽을 수 없습니다: %v", err)
	}

	var cfg dataSection
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Fatalf("설정 파일 파싱 실패: %v", err)
	}
	if len(cfg.Data.DatabaseFiles) == 0 {
		log.Fatal("data.database_files가 비어 있습니다")
	}

	var merged *model.HanjaDatabase
	conflicts := 0
	for _, path := range cfg.Data.DatabaseFiles {
		db, err := loadDatabase(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("건너뜀 (없음): %s", path)
				continue
			}
			log.Fatalf("%s 읽기 실패: %v", path, err)
		}

		if merged == nil {
			merged = db
			log.Printf("기준 파일: %s (%d자)", path, countCharacters(db))
			continue
		}

		added, conflicted := mergeInto(merged, db)
		conflicts += conflicted
		log.Printf("병합: %s (+%d자, 충돌 %d건)", path, added, conflicted)
	}

	if merged == nil {
		log.Fatal("읽을 수 있는 데이터베이스 파일이 없습니다")
	}

	recount(merged)

	encoded, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		log.Fatalf("직렬화 실패: %v", err)
	}
	if err := os.WriteFile(*out, encoded, 0644); err != nil {
		log.Fatalf("출력 실패: %v", err)
	}

	log.Printf("완료: %s (총 %d자, 충돌 %d건 — 기준 파일 값 유지)", *out, countCharacters(merged), conflicts)
}

func loadDatabase(path string) (*model.HanjaDatabase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var db model.HanjaDatabase
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("JSON 파싱 실패: %w", err)
	}
	return &db, nil
}

// mergeInto는 src의 문자 중 dst에 없는 것만 추가한다. 같은 문자가 서로
// 다른 내용을 가지면 충돌로 세고 dst 값을 유지한다.
func mergeInto(dst *model.HanjaDatabase, src *model.HanjaDatabase) (added, conflicts int) {
	seen := map[string]model.HanjaCharacter{}
	collect(dst, seen)

	a, c := mergeSection(&dst.Basic, &src.Basic, seen)
	added += a
	conflicts += c

	if src.Advanced != nil {
		if dst.Advanced == nil {
			dst.Advanced = &model.HanjaSection{
				Name:        src.Advanced.Name,
				Description: src.Advanced.Description,
				Levels:      map[string]model.HanjaLevel{},
			}
		}
		a, c := mergeSection(dst.Advanced, src.Advanced, seen)
		added += a
		conflicts += c
	}
	return added, conflicts
}

func mergeSection(dst, src *model.HanjaSection, seen map[string]model.HanjaCharacter) (added, conflicts int) {
	if dst.Levels == nil {
		dst.Levels = map[string]model.HanjaLevel{}
	}

	keys := make([]string, 0, len(src.Levels))
	for k := range src.Levels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		srcLevel := src.Levels[key]
		dstLevel, ok := dst.Levels[key]
		if !ok {
			dstLevel = model.HanjaLevel{Name: srcLevel.Name, Description: srcLevel.Description}
		}
		for _, ch := range srcLevel.Characters {
			existing, dup := seen[ch.Character]
			if !dup {
				dstLevel.Characters = append(dstLevel.Characters, ch)
				seen[ch.Character] = ch
				added++
				continue
			}
			if existing.Meaning != ch.Meaning || existing.Strokes != ch.Strokes {
				log.Printf("충돌: %s (뜻 %q/%q, 획수 %d/%d)",
					ch.Character, existing.Meaning, ch.Meaning, existing.Strokes, ch.Strokes)
				conflicts++
			}
		}
		dst.Levels[key] = dstLevel
	}
	return added, conflicts
}

func collect(db *model.HanjaDatabase, into map[string]model.HanjaCharacter) {
	for _, level := range db.Basic.Levels {
		for _, ch := range level.Characters {
			into[ch.Character] = ch
		}
	}
	if db.Advanced != nil {
		for _, level := range db.Advanced.Levels {
			for _, ch := range level.Characters {
				into[ch.Character] = ch
			}
		}
	}
}

func recount(db *model.HanjaDatabase) {
	db.Basic.TotalCharacters = sectionCount(&db.Basic)
	if db.Advanced != nil {
		db.Advanced.TotalCharacters = sectionCount(db.Advanced)
	}
}

func sectionCount(s *model.HanjaSection) int {
	n := 0
	for _, level := range s.Levels {
		n += len(level.Characters)
	}
	return n
}

func countCharacters(db *model.HanjaDatabase) int {
	n := sectionCount(&db.Basic)
	if db.Advanced != nil {
		n += sectionCount(db.Advanced)
	}
	return n
}
