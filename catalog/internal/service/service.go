package service

import (
	"context"
	"sync"
	"time"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/report"
	"github.com/Astemirdum/library-catalog/catalog/internal/repository"
	"github.com/Astemirdum/library-catalog/catalog/internal/store"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LoadCatalog reads every record from repo and reconciles user references.
func LoadCatalog(ctx context.Context, repo repository.Repository, now func() time.Time) (*store.Catalog, error) {
	books, err := repo.LoadBooks(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "load books")
	}
	users, err := repo.LoadUsers(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "load users")
	}
	c, err := store.New(books, users, now)
	if err != nil {
		return nil, errors.WithMessage(err, "build catalog")
	}
	return c, nil
}

type Options struct {
	ReportPath string
	Now        func() time.Time
}

// Service serializes every call into the catalog, which holds no locks
// itself.
type Service struct {
	mu         sync.Mutex
	catalog    *store.Catalog
	repo       repository.Repository
	enqueuer   kafka.Enqueuer
	now        func() time.Time
	reportPath string
	log        *zap.Logger
}

func NewService(catalog *store.Catalog, repo repository.Repository, enqueuer kafka.Enqueuer, opts Options, log *zap.Logger) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if enqueuer == nil {
		enqueuer = kafka.NopEnqueuer{}
	}
	return &Service{
		catalog:    catalog,
		repo:       repo,
		enqueuer:   enqueuer,
		now:        opts.Now,
		reportPath: opts.ReportPath,
		log:        log.Named("service"),
	}
}

func (s *Service) Books(_ context.Context) []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Books()
}

func (s *Service) Book(_ context.Context, id int) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.catalog.Book(id)
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return b, nil
}

func (s *Service) AddBook(_ context.Context, req model.AddBookRequest) model.Book {
	s.mu.Lock()
	b := s.catalog.AddBook(req.Title, req.Author, req.Genre)
	s.mu.Unlock()

	s.log.Info("book added", zap.Int("id", b.ID), zap.String("title", b.Title))
	s.publish(model.EventBookAdded, b.ID)
	return b
}

func (s *Service) RemoveBook(_ context.Context, id int) {
	s.mu.Lock()
	_, existed := s.catalog.Book(id)
	s.catalog.RemoveBook(id)
	s.mu.Unlock()

	if !existed {
		s.log.Debug("remove of unknown book", zap.Int("id", id))
		return
	}
	s.log.Info("book removed", zap.Int("id", id))
	s.publish(model.EventBookRemoved, id)
}

func (s *Service) CheckOutBook(_ context.Context, id int) bool {
	s.mu.Lock()
	ok := s.catalog.CheckOutBook(id)
	s.mu.Unlock()

	if ok {
		s.publish(model.EventBookCheckedOut, id)
	}
	return ok
}

func (s *Service) ReturnBook(_ context.Context, id int) bool {
	s.mu.Lock()
	ok := s.catalog.ReturnBook(id)
	s.mu.Unlock()

	if ok {
		s.publish(model.EventBookReturned, id)
	}
	return ok
}

func (s *Service) BookAvailability(_ context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.BookAvailability(id)
}

func (s *Service) BookCount(_ context.Context, title string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.BookCount(title)
}

func (s *Service) SearchBooks(_ context.Context, filter model.BookFilter) []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.SearchBooks(store.Matching(filter))
}

func (s *Service) Users(_ context.Context, borrowingOnly bool) []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.SearchUsers(func(u model.User) bool {
		return !borrowingOnly || u.HasBooks()
	})
}

// GenerateReport renders the summary and overwrites the report file.
func (s *Service) GenerateReport(_ context.Context) (string, error) {
	s.mu.Lock()
	text := report.Build(s.catalog, s.now()).String()
	s.mu.Unlock()

	s.log.Info("report generated", zap.String("report", text))
	if s.reportPath == "" {
		return text, nil
	}
	if err := report.Save(s.reportPath, text); err != nil {
		return "", err
	}
	s.log.Info("report saved", zap.String("path", s.reportPath))
	return text, nil
}

// Save rewrites the record storage from a snapshot of the catalog.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	books, users := s.catalog.Books(), s.catalog.Users()
	s.mu.Unlock()

	if err := s.repo.Save(ctx, books, users); err != nil {
		return errors.WithMessage(err, "save catalog")
	}
	return nil
}

// Apply executes a checkout or return command from the message queue.
func (s *Service) Apply(ctx context.Context, cmd model.Command) (bool, error) {
	switch cmd.Op {
	case model.OpCheckout:
		return s.CheckOutBook(ctx, cmd.BookID), nil
	case model.OpReturn:
		return s.ReturnBook(ctx, cmd.BookID), nil
	}
	return false, errors.Errorf("unknown op %q", cmd.Op)
}

func (s *Service) publish(typ model.EventType, bookID int) {
	ev := model.NewCatalogEvent(typ, bookID, s.now())
	if err := s.enqueuer.Enqueue(kafka.CatalogEventsTopic, ev.ID.String(), ev); err != nil {
		s.log.Warn("publish catalog event", zap.String("type", string(typ)), zap.Int("bookId", bookID), zap.Error(err))
	}
}
