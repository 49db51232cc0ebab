package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	md "github.com/Astemirdum/library-catalog/pkg/middleware"
	"github.com/Astemirdum/library-catalog/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const invalidIDMessage = "Please enter a valid book ID."

type Handler struct {
	catalogSvc CatalogService
	log        *zap.Logger
}

func New(catalogSvc CatalogService, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		log:        log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost, http.MethodDelete},
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	h.register(api)
	return e
}

func (h *Handler) register(api *echo.Group) {
	api.GET("/books", h.ListBooks)
	api.POST("/books", h.AddBook)
	api.GET("/books/view", h.ViewBooks)
	api.GET("/books/count", h.BookCount)
	api.GET("/books/search", h.SearchBooks)
	api.GET("/books/:id", h.GetBook)
	api.DELETE("/books/:id", h.RemoveBook)
	api.GET("/books/:id/availability", h.Availability)
	api.POST("/books/:id/checkout", h.CheckOut)
	api.POST("/books/:id/return", h.Return)

	api.GET("/users", h.ListUsers)
	api.POST("/report", h.Report)
	api.POST("/catalog/save", h.Save)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListBooks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalogSvc.Books(c.Request().Context()))
}

// ViewBooks re-renders the whole catalog as a plain-text listing.
func (h *Handler) ViewBooks(c echo.Context) error {
	var sb strings.Builder
	sb.WriteString("Books in the Library:\n")
	for _, b := range h.catalogSvc.Books(c.Request().Context()) {
		fmt.Fprintf(&sb, "ID: %d, %s\n", b.ID, b)
	}
	return c.String(http.StatusOK, sb.String())
}

func (h *Handler) AddBook(c echo.Context) error {
	var req model.AddBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	book := h.catalogSvc.AddBook(c.Request().Context(), req)
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}
	book, err := h.catalogSvc.Book(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) RemoveBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}
	h.catalogSvc.RemoveBook(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Availability(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}
	available := h.catalogSvc.BookAvailability(c.Request().Context(), id)
	return c.JSON(http.StatusOK, model.Availability{ID: id, Available: available})
}

func (h *Handler) CheckOut(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}
	if !h.catalogSvc.CheckOutBook(c.Request().Context(), id) {
		return echo.NewHTTPError(http.StatusConflict, "book is not available")
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) Return(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return err
	}
	if !h.catalogSvc.ReturnBook(c.Request().Context(), id) {
		return echo.NewHTTPError(http.StatusConflict, "book is not checked out")
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) BookCount(c echo.Context) error {
	title := c.QueryParam("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	count := h.catalogSvc.BookCount(c.Request().Context(), title)
	return c.JSON(http.StatusOK, model.Count{Title: title, Count: count})
}

func (h *Handler) SearchBooks(c echo.Context) error {
	filter := model.BookFilter{
		Title:  c.QueryParam("title"),
		Author: c.QueryParam("author"),
		Genre:  c.QueryParam("genre"),
	}
	if param := c.QueryParam("checkedOut"); param != "" {
		checkedOut, err := strconv.ParseBool(param)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "checkedOut is invalid")
		}
		filter.CheckedOut = &checkedOut
	}
	return c.JSON(http.StatusOK, h.catalogSvc.SearchBooks(c.Request().Context(), filter))
}

func (h *Handler) ListUsers(c echo.Context) error {
	var (
		err       error
		borrowing bool
	)
	if param := c.QueryParam("borrowing"); param != "" {
		if borrowing, err = strconv.ParseBool(param); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "borrowing is invalid")
		}
	}
	return c.JSON(http.StatusOK, h.catalogSvc.Users(c.Request().Context(), borrowing))
}

func (h *Handler) Report(c echo.Context) error {
	text, err := h.catalogSvc.GenerateReport(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.String(http.StatusOK, text)
}

func (h *Handler) Save(c echo.Context) error {
	if err := h.catalogSvc.Save(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// bookID rejects non-numeric ids before they reach the catalog.
func bookID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, invalidIDMessage).SetInternal(errs.ErrInvalidID)
	}
	return id, nil
}
