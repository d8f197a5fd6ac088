package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/termspage/termspage/internal/storage"
	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/internal/terms/repository"
)

type verifyReport struct {
	OK        bool     `json:"ok"`
	Count     int64    `json:"count"`
	Languages []string `json:"languages"`
	Missing   []string `json:"missing,omitempty"`
}

// seedIfEmpty inserts docs only when the store has no rows.
func seedIfEmpty(ctx context.Context, repo repository.Repository, docs []terms.Document, out io.Writer) error {
	n, err := repository.SeedIfEmpty(ctx, repo, docs)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "store already seeded, nothing inserted")
		return nil
	}
	fmt.Fprintf(out, "seeded %d documents\n", n)
	return nil
}

// reset wipes the store and inserts docs again, printing one line per language.
func reset(ctx context.Context, repo repository.Repository, docs []terms.Document, out io.Writer) error {
	removed, err := repo.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("wipe: %w", err)
	}
	fmt.Fprintf(out, "removed %d documents\n", removed)

	inserted, err := repo.InsertIgnore(ctx, docs)
	if err != nil {
		return fmt.Errorf("reseed: %w", err)
	}
	perLang := map[string]int{}
	for _, d := range docs {
		perLang[d.Lang]++
	}
	for _, lang := range sortedKeys(perLang) {
		fmt.Fprintf(out, "  %s: %d\n", lang, perLang[lang])
	}
	fmt.Fprintf(out, "inserted %d documents\n", inserted)
	return nil
}

// verify reports which languages exist and fails when one of want is absent.
func verify(ctx context.Context, repo repository.Repository, want []terms.Document, asJSON bool, out io.Writer) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	docs, err := repo.List(ctx)
	if err != nil {
		return err
	}
	have := map[string]bool{}
	for _, d := range docs {
		if d.Slug == terms.DefaultSlug {
			have[d.Lang] = true
		}
	}
	rep := verifyReport{Count: count, Languages: sortedKeys(have)}
	for _, d := range want {
		if !have[d.Lang] {
			rep.Missing = append(rep.Missing, d.Lang)
		}
	}
	rep.OK = len(rep.Missing) == 0

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "documents: %d\n", rep.Count)
		fmt.Fprintf(out, "languages: %v\n", rep.Languages)
	}
	if !rep.OK {
		return fmt.Errorf("missing terms for languages %v", rep.Missing)
	}
	return nil
}

// export uploads docs to the seed bucket.
func export(ctx context.Context, store storage.ObjectStore, prefix string, docs []terms.Document, out io.Writer) error {
	if err := storage.ExportDocuments(ctx, store, prefix, docs); err != nil {
		return err
	}
	for _, d := range docs {
		fmt.Fprintf(out, "exported %s\n", storage.ObjectKey(prefix, d))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
