package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "clipflow/configs"
	"clipflow/internal/models"
	"clipflow/internal/repository"
)

type MediaService interface {
	Upload(ctx context.Context, userID int64, files []*multipart.FileHeader) ([]int64, error)
	List(ctx context.Context, userID int64) ([]*models.MediaAsset, error)
	Remove(ctx context.Context, userID, assetID int64) error
}

type mediaService struct {
	cfg config.Config
	ma  repository.MediaAssetRepository
	r2  R2Service
}

func NewMediaService(cfg config.Config, ma repository.MediaAssetRepository, r2 R2Service) MediaService {
	return &mediaService{
		cfg: cfg,
		ma:  ma,
		r2:  r2,
	}
}

// Upload validates and stores a set of video files, returning the asset IDs
// in the same order the files were given.
func (s *mediaService) Upload(ctx context.Context, userID int64, files []*multipart.FileHeader) ([]int64, error) {
	if len(files) == 0 {
		err := errors.New("no files provided")
		slog.Info(err.Error())
		return nil, err
	}

	allowedTypes := map[string]struct{}{
		"mp4": {}, "mov": {},
	}

	assetIDs := make([]int64, 0, len(files))
	for _, file := range files {
		fileContent, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("error opening file: %w", err)
		}

		fileBytes, err := io.ReadAll(fileContent)
		fileContent.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading file content: %w", err)
		}

		fileType, err := filetype.Match(fileBytes)
		if err != nil || fileType == types.Unknown {
			return nil, fmt.Errorf("unsupported file type: %w", err)
		}
		if _, ok := allowedTypes[fileType.Extension]; !ok {
			return nil, fmt.Errorf("file type %s is not allowed", fileType.Extension)
		}

		assetID, err := s.saveFile(ctx, userID, fileType.MIME.Value, fileBytes)
		if err != nil {
			return nil, fmt.Errorf("error uploading file: %w", err)
		}

		assetIDs = append(assetIDs, assetID)
	}

	return assetIDs, nil
}

func (s *mediaService) saveFile(ctx context.Context, userID int64, fileType string, file []byte) (int64, error) {
	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	if err := s.r2.UploadToR2(ctx, key, file, fileType); err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	ma := models.MediaAsset{
		UserID:   userID,
		FileName: key,
		FileType: fileType,
		FileSize: int64(len(file)),
		FileURL:  fmt.Sprintf("%s/%s", s.cfg.R2.PublicBaseURL, key),
	}

	assetID, err := s.ma.Create(ctx, nil, &ma)
	if err != nil {
		return 0, err
	}

	return assetID, nil
}

func (s *mediaService) List(ctx context.Context, userID int64) ([]*models.MediaAsset, error) {
	assets, err := s.ma.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing assets")
	}
	return assets, nil
}

func (s *mediaService) Remove(ctx context.Context, userID, assetID int64) error {
	isValid, err := s.ma.CheckByUserID(ctx, assetID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		err = errors.New("asset doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return s.ma.Remove(ctx, assetID)
}
