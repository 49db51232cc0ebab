package repository

import (
	"context"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

// Repository loads the catalog records at startup and rewrites them in
// full on save.
type Repository interface {
	LoadBooks(ctx context.Context) ([]model.Book, error)
	LoadUsers(ctx context.Context) ([]model.User, error)
	Save(ctx context.Context, books []model.Book, users []model.User) error
}

const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)
