package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	TitlesCollection     = "titles"
	NamesCollection      = "names"
	PrincipalsCollection = "principals"
	CrewsCollection      = "crews"
	AkasCollection       = "akas"
	EpisodesCollection   = "episodes"
)

type Options struct {
	URI      string
	Database string
	// ConnectTimeout bounds the initial dial and ping only.
	ConnectTimeout time.Duration
}

// Store owns the client and the database every repository works on.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	mu     sync.RWMutex
	closed bool
}

func NewConnection(ctx context.Context, opts Options) (*Store, error) {
	if opts.URI == "" {
		return nil, errors.New("mongodb: uri is required")
	}
	if opts.Database == "" {
		return nil, errors.New("mongodb: database is required")
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return &Store{client: client, db: client.Database(opts.Database)}, nil
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return errors.New("mongodb: store is closed")
	}
	return translateError(s.client.Ping(ctx, readpref.Primary()))
}

// Close disconnects once; later calls are no-ops.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb: disconnect: %w", err)
	}
	return nil
}
