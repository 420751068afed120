package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/sparks/noteapp/internal/common"
	"github.com/sparks/noteapp/internal/dbx"
	sc "github.com/sparks/noteapp/internal/server/config"
	"github.com/sparks/noteapp/internal/server/models"
	"github.com/sparks/noteapp/internal/server/repositories/repomanager"
)

// NoteService implements the ownership-gated note operations. Create assigns
// ownership to the caller implicitly; update, delete, and the attachment
// operations pass through requireOwner first.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *NoteService {
	return &NoteService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// requireOwner returns the note only when it exists and is owned by user.
// A missing note and a foreign note stay distinguishable (404 vs 403).
func requireOwner(user *models.User, note *models.Note) (*models.Note, error) {
	if note.UserID != user.ID {
		return nil, common.ErrorForbidden
	}
	return note, nil
}

func (s *NoteService) Create(ctx context.Context, user *models.User, title, content string) (*models.Note, error) {

	note := &models.Note{
		Title:   title,
		Content: content,
		UserID:  user.ID,
	}

	repo := s.repomanager.Notes(s.db)

	note, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %v", err)
	}

	return note, nil
}

func (s *NoteService) List(ctx context.Context, user *models.User) ([]*models.Note, error) {

	repo := s.repomanager.Notes(s.db)

	result, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %v", err)
	}

	return result, nil
}

// Update replaces the title and content of a note owned by user. The read,
// ownership check, and write run in one transaction.
func (s *NoteService) Update(ctx context.Context, user *models.User, id int64, title, content string) (*models.Note, error) {

	var updated *models.Note

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		note, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := requireOwner(user, note); err != nil {
			return err
		}

		note.Title = title
		note.Content = content

		updated, err = repo.Update(ctx, note)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, user *models.User, id int64) error {

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		note, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := requireOwner(user, note); err != nil {
			return err
		}

		return repo.Delete(ctx, note.ID)
	})
}

// GetRandomStorageKey builds a date-bucketed object key for a new attachment.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("notes/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *NoteService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// PresignAttachmentUpload reserves an object key for the note's attachment
// and returns a presigned PUT URL the client uploads to directly. The caller
// must own the note.
func (s *NoteService) PresignAttachmentUpload(ctx context.Context, user *models.User, id int64) (string, string, error) {

	repo := s.repomanager.Notes(s.db)

	note, err := repo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	if _, err := requireOwner(user, note); err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", "", err
	}

	if err := repo.SetAttachmentKey(ctx, note.ID, key); err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignAttachmentDownload returns a presigned GET URL for the note's
// attachment. Notes without an attachment report ErrorNotFound.
func (s *NoteService) PresignAttachmentDownload(ctx context.Context, user *models.User, id int64) (string, error) {

	repo := s.repomanager.Notes(s.db)

	note, err := repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if _, err := requireOwner(user, note); err != nil {
		return "", err
	}
	if note.AttachmentKey == "" {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &note.AttachmentKey,
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
