package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/termspage/termspage/internal/terms"
)

// ObjectStore is the subset of MinIOStorage the seed helpers need.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// ObjectKey is where a document lives in the bucket: <prefix><lang>-<slug>.json.
func ObjectKey(prefix string, d terms.Document) string {
	return prefix + d.Lang + "-" + d.Slug + ".json"
}

// ExportDocuments writes each document as one JSON object.
func ExportDocuments(ctx context.Context, store ObjectStore, prefix string, docs []terms.Document) error {
	for _, d := range docs {
		b, err := json.Marshal(d)
		if err != nil {
			return err
		}
		if err := store.Upload(ctx, ObjectKey(prefix, d), b, "application/json"); err != nil {
			return fmt.Errorf("upload %s: %w", ObjectKey(prefix, d), err)
		}
	}
	return nil
}

// LoadDocuments reads every *.json object under prefix as a seed document.
func LoadDocuments(ctx context.Context, store ObjectStore, prefix string) ([]terms.Document, error) {
	keys, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	sort.Strings(keys)
	var out []terms.Document
	for _, k := range keys {
		if !strings.HasSuffix(k, ".json") {
			continue
		}
		rc, err := store.Download(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", k, err)
		}
		d, err := DecodeDocument(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", k, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// DecodeDocument parses one seed object and normalizes its keys.
func DecodeDocument(r io.Reader) (terms.Document, error) {
	var d terms.Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return terms.Document{}, err
	}
	d.Lang = terms.NormalizeLang(d.Lang, "")
	if d.Slug == "" {
		d.Slug = terms.DefaultSlug
	}
	if d.Lang == "" || d.Title == "" || d.Content == "" {
		return terms.Document{}, fmt.Errorf("seed document needs lang, title and content")
	}
	return d, nil
}
