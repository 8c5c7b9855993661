package main

import (
	"context"
	"net/http"
	"time"

	"olreader/internal/book"
	"olreader/internal/catalog"
	"olreader/internal/httpx"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	catalog *catalog.HTTPHandler
	books   *book.HTTPHandler
	db      pinger
}

func newRouter(d routerDeps) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/search", d.catalog.Search)
	router.HandleFunc("GET /v1/search/isbn/{isbn}", d.catalog.SearchByISBN)
	router.HandleFunc("GET /v1/works/{id}", d.catalog.Detail)
	router.HandleFunc("GET /v1/works/{id}/availability", d.catalog.Availability)
	router.HandleFunc("GET /v1/authors/{id}", d.catalog.Author)
	router.HandleFunc("GET /v1/trending", d.catalog.Trending)
	router.HandleFunc("GET /v1/covers/{id}", d.catalog.Cover)

	router.HandleFunc("POST /v1/books", d.books.Resolve)
	router.HandleFunc("GET /v1/books", d.books.List)
	router.HandleFunc("GET /v1/books/{external_id}", d.books.Get)
	router.HandleFunc("GET /v1/books/isbn/{isbn}", d.books.GetByISBN)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})

	return router
}
