package documents

import (
	"context"
	"errors"
	"strings"
	"testing"

	localstore "zephvault-backend/internal/shared/storage/object/local"
)

func TestUploadStoresFileAndRecord(t *testing.T) {
	store := localstore.New(t.TempDir())
	repo := NewMemoryRepo()
	svc := &Service{Store: store, Repo: repo, PublicBaseURL: "https://files.example.com/public"}

	doc, err := svc.Upload(context.Background(), UploadInput{
		FileName:   "lease agreement.txt",
		Category:   "Lease Documents",
		UnitID:     "unit-1",
		UploadedBy: "admin",
		Body:       strings.NewReader("term: 12 months"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if doc.ID == "" {
		t.Fatal("expected generated id")
	}
	if doc.Category != "lease-documents" {
		t.Fatalf("expected sanitized category, got %q", doc.Category)
	}
	wantURL := "https://files.example.com/public/documents/lease-documents/lease agreement.txt"
	if doc.FileURL != wantURL {
		t.Fatalf("expected file url %q, got %q", wantURL, doc.FileURL)
	}

	stored, err := repo.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.FileName != "lease agreement.txt" {
		t.Fatalf("unexpected stored file name %q", stored.FileName)
	}

	key, err := StorageKeyFromURL(doc.FileURL)
	if err != nil {
		t.Fatalf("key from url: %v", err)
	}
	body, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open stored object: %v", err)
	}
	body.Close()
}

func TestUploadRejectsTraversalName(t *testing.T) {
	svc := &Service{Store: localstore.New(t.TempDir()), Repo: NewMemoryRepo()}

	_, err := svc.Upload(context.Background(), UploadInput{
		FileName: "../../etc/passwd",
		Body:     strings.NewReader("x"),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteRemovesRecordAndObject(t *testing.T) {
	store := localstore.New(t.TempDir())
	repo := NewMemoryRepo()
	svc := &Service{Store: store, Repo: repo}

	doc, err := svc.Upload(context.Background(), UploadInput{
		FileName: "notes.txt",
		Category: "general",
		Body:     strings.NewReader("hello"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(context.Background(), doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	key, _ := StorageKeyFromURL(doc.FileURL)
	if _, err := store.Open(context.Background(), key); err == nil {
		t.Fatal("expected object gone after delete")
	}
}

func TestDeleteUnknownDocument(t *testing.T) {
	svc := &Service{Store: localstore.New(t.TempDir()), Repo: NewMemoryRepo()}

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSummaryLastWriteWins(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Store: localstore.New(t.TempDir()), Repo: repo}

	doc, err := svc.Upload(context.Background(), UploadInput{
		FileName: "lease.txt",
		Body:     strings.NewReader("content"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.UpdateSummary(context.Background(), doc.ID, "first"); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := svc.UpdateSummary(context.Background(), doc.ID, "second"); err != nil {
		t.Fatalf("second update: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), doc.ID)
	if stored.AISummary != "second" {
		t.Fatalf("expected latest summary, got %q", stored.AISummary)
	}
}
