package service

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// SnapshotService bundles the learning data directory into a timestamped
// tar.gz and hands it to the storage provider. Runs daily via the app
// scheduler and on demand through the admin endpoint.
type SnapshotService struct {
	LearningRepo *repository.LearningRepository
	Storage      *StorageService

	now func() time.Time
}

func NewSnapshotService(learningRepo *repository.LearningRepository, storage *StorageService) *SnapshotService {
	return &SnapshotService{
		LearningRepo: learningRepo,
		Storage:      storage,
		now:          time.Now,
	}
}

// Run creates and stores one snapshot, returning its location.
func (s *SnapshotService) Run(ctx context.Context) (string, error) {
	files, err := s.LearningRepo.ListUserFiles()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	for _, path := range files {
		if err := addFile(tw, path); err != nil {
			tw.Close()
			gw.Close()
			return "", err
		}
	}
	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := gw.Close(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("snapshots/learning-%s.tar.gz", s.now().Format("20060102-150405"))
	url, err := s.Storage.Provider.Upload(ctx, name, &buf, int64(buf.Len()), "application/gzip")
	if err != nil {
		return "", err
	}

	logger.Log.Info("learning data snapshot stored",
		zap.String("location", url),
		zap.Int("documents", len(files)))
	return url, nil
}

func addFile(tw *tar.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(path)

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}
