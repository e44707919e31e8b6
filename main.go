// @title Hanja Learning API
// @version 1.0
// @description 한자 학습 플랫폼 백엔드 서버.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"

	"hanja_edu_backend/internal/app"
	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/pkg/logger"
)

func main() {
	// 명령행 인자
	validateOnly := flag.Bool("validate-data", false, "한자 데이터베이스를 검증하고 종료")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ValidateOnly = *validateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *validateOnly {
		log.Println("데이터 검증 완료, 종료합니다")
		return
	}

	application.Run()
}
