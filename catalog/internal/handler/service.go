package handler

import (
	"context"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var _ CatalogService = (*service.Service)(nil)

type CatalogService interface {
	Books(ctx context.Context) []model.Book
	Book(ctx context.Context, id int) (model.Book, error)
	AddBook(ctx context.Context, req model.AddBookRequest) model.Book
	RemoveBook(ctx context.Context, id int)
	CheckOutBook(ctx context.Context, id int) bool
	ReturnBook(ctx context.Context, id int) bool
	BookAvailability(ctx context.Context, id int) bool
	BookCount(ctx context.Context, title string) int
	SearchBooks(ctx context.Context, filter model.BookFilter) []model.Book
	Users(ctx context.Context, borrowingOnly bool) []model.User
	GenerateReport(ctx context.Context) (string, error)
	Save(ctx context.Context) error
}
