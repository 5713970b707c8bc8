package notice

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/model"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrNotFound  = errors.New("notice not found")
	ErrInvalidID = errors.New("invalid notice id")
	ErrNotAuthor = errors.New("only the author may delete a notice")
)

// Entry is a notice with its author's name populated.
type Entry struct {
	ID         primitive.ObjectID `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Author     primitive.ObjectID `json:"author"`
	AuthorName string             `json:"authorName"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, n model.Notice) (model.Notice, error)
	List(ctx context.Context) ([]model.Notice, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Notice, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AuthorNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

// Service implements the bulletin board.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all notices newest-first with author names.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	notices, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(notices))
	seen := map[primitive.ObjectID]bool{}
	for _, n := range notices {
		if !seen[n.Author] {
			seen[n.Author] = true
			ids = append(ids, n.Author)
		}
	}
	names, err := s.store.AuthorNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(notices))
	for _, n := range notices {
		entries = append(entries, Entry{
			ID:         n.ID,
			Title:      n.Title,
			Content:    n.Content,
			Author:     n.Author,
			AuthorName: names[n.Author],
			CreatedAt:  n.CreatedAt,
		})
	}
	return entries, nil
}

// Create posts a notice authored by the given staff account.
func (s *Service) Create(ctx context.Context, authorID, title, content string) (Entry, error) {
	aid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return Entry{}, ErrInvalidID
	}
	n, err := s.store.Insert(ctx, model.Notice{Title: title, Content: content, Author: aid})
	if err != nil {
		return Entry{}, err
	}
	names, err := s.store.AuthorNames(ctx, []primitive.ObjectID{aid})
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Author:     n.Author,
		AuthorName: names[aid],
		CreatedAt:  n.CreatedAt,
	}, nil
}

// Delete removes a notice, allowed only for its author.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	n, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if n.Author.Hex() != callerID {
		return ErrNotAuthor
	}
	return s.store.Delete(ctx, oid)
}
