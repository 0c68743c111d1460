package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	repo "github.com/oksasatya/agrosphere-api/internal/domain/repository"
)

// SearchIndex mirrors a collection into a full-text index.
type SearchIndex interface {
	Put(ctx context.Context, id string, doc entity.Document) error
	Query(ctx context.Context, q string, size int) ([]entity.Document, error)
}

// CollectionService is the uniform read/insert/vote surface of a document collection.
type CollectionService struct {
	Name   string
	Repo   repo.DocumentRepository
	Index  SearchIndex
	Logger *logrus.Logger
}

// NewCollectionService builds a service for one collection. index may be nil.
func NewCollectionService(name string, r repo.DocumentRepository, index SearchIndex, logger *logrus.Logger) *CollectionService {
	return &CollectionService{Name: name, Repo: r, Index: index, Logger: logger}
}

func (s *CollectionService) List(ctx context.Context) ([]entity.Document, error) {
	return s.Find(ctx, nil)
}

// Find returns the documents matching every key of filter.
func (s *CollectionService) Find(ctx context.Context, filter map[string]any) ([]entity.Document, error) {
	return s.find(ctx, filter, repo.FindOptions{})
}

// Latest returns the n most recently inserted documents.
func (s *CollectionService) Latest(ctx context.Context, n int64) ([]entity.Document, error) {
	return s.find(ctx, nil, repo.FindOptions{NewestFirst: true, Limit: n})
}

func (s *CollectionService) find(ctx context.Context, filter map[string]any, opts repo.FindOptions) ([]entity.Document, error) {
	docs, err := s.Repo.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.Name, err)
	}
	if docs == nil {
		docs = []entity.Document{}
	}
	return docs, nil
}

func (s *CollectionService) Get(ctx context.Context, id string) (entity.Document, error) {
	oid, ok := entity.ParseID(id)
	if !ok {
		return nil, ErrInvalidID
	}
	doc, err := s.Repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get %s: %w", s.Name, err)
	}
	return doc, nil
}

// Insert stores doc with a server-assigned id; a client-supplied _id is discarded.
func (s *CollectionService) Insert(ctx context.Context, doc entity.Document) (primitive.ObjectID, error) {
	if len(doc) == 0 {
		return primitive.NilObjectID, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}
	clean := doc.Clone()
	delete(clean, entity.IDField)
	id, err := s.Repo.Insert(ctx, clean)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert %s: %w", s.Name, err)
	}
	s.index(ctx, id, clean)
	return id, nil
}

// Increment adds delta to field of the document id.
func (s *CollectionService) Increment(ctx context.Context, id, field string, delta int) error {
	oid, ok := entity.ParseID(id)
	if !ok {
		return ErrInvalidID
	}
	if err := s.Repo.Increment(ctx, oid, field, delta); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("increment %s.%s: %w", s.Name, field, err)
	}
	return nil
}

// Search queries the full-text index. Without an index it returns no results.
func (s *CollectionService) Search(ctx context.Context, q string) ([]entity.Document, error) {
	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return []entity.Document{}, nil
	}
	docs, err := s.Index.Query(ctx, q, 20)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.Name, err)
	}
	return docs, nil
}

// index is best-effort; a failure leaves the stored document untouched.
func (s *CollectionService) index(ctx context.Context, id primitive.ObjectID, doc entity.Document) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, id.Hex(), doc); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"collection": s.Name, "id": id.Hex()}).Warn("search index failed")
	}
}
