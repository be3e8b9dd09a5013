package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logger"
	"bookcatalog/internal/platform/openlibrary"
	"bookcatalog/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	subjects   []string
	perSubject int
	generate   int
	rps        int

	rootCmd = &cobra.Command{
		Use:           "bookcatalog-seed",
		Short:         "Fill the catalog with books from Open Library or generated titles",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnvFiles()
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "optional config file")
	flags.StringSliceVar(&subjects, "subject", []string{"fiction", "science", "poetry"}, "Open Library subjects to import")
	flags.IntVar(&perSubject, "per-subject", 20, "books to import per subject")
	flags.IntVar(&generate, "generate", 0, "insert this many generated books instead of calling Open Library")
	flags.IntVar(&rps, "rps", 2, "Open Library requests per second")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.LogConfig)
	defer func() { _ = log.Sync() }()

	repo, closeStore, err := store.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	service := book.NewService(repo, log)

	var inputs []book.AddInput
	if generate > 0 {
		log.Info("generating books", zap.Int("count", generate))
		inputs = generated(generate, rand.New(rand.NewSource(rand.Int63())))
	} else {
		client := openlibrary.NewClient("bookcatalog-seed/1.0", rps, 3)
		inputs, err = fetch(ctx, client, subjects, perSubject, log)
		if err != nil {
			return err
		}
	}

	added := 0
	for _, in := range inputs {
		if _, err := service.Add(ctx, in); err != nil {
			log.Warn("skip book", zap.String("title", in.Title), zap.Error(err))
			continue
		}
		added++
	}
	log.Info("seed complete", zap.Int("added", added), zap.Int("skipped", len(inputs)-added))
	return nil
}

func fetch(ctx context.Context, client *openlibrary.Client, subjects []string, limit int, log *zap.Logger) ([]book.AddInput, error) {
	var out []book.AddInput
	for _, subject := range subjects {
		res, err := client.SearchBooks(ctx, subject, limit)
		if err != nil {
			return nil, fmt.Errorf("search subject %q: %w", subject, err)
		}
		log.Info("fetched subject", zap.String("subject", subject), zap.Int("docs", len(res.Docs)))
		for _, doc := range res.Docs {
			if in, ok := fromDoc(client, doc); ok {
				out = append(out, in)
			}
		}
	}
	return out, nil
}

// fromDoc maps a search result to an add request. Docs without a title or
// author are skipped.
func fromDoc(client *openlibrary.Client, doc openlibrary.Doc) (book.AddInput, bool) {
	in := book.AddInput{
		Title:      strings.TrimSpace(doc.Title),
		Author:     strings.Join(doc.AuthorNames, ", "),
		Format:     book.FormatPrint,
		CoverPhoto: client.CoverURL(doc),
	}
	if in.Title == "" || in.Author == "" {
		return book.AddInput{}, false
	}
	for _, f := range doc.Formats {
		if strings.Contains(strings.ToLower(f), "audio") {
			in.Format = book.FormatAudio
			break
		}
	}
	if doc.FirstPublishYear > 0 {
		in.PublishedAt = strconv.Itoa(doc.FirstPublishYear) + "-01-01"
	}
	return in, true
}

func generated(count int, rng *rand.Rand) []book.AddInput {
	authors := []string{"Ada Byron", "Kim Stanley", "Mary Shelley", "Italo Calvino", "Octavia Butler", "Jorge Luis Borges"}
	out := make([]book.AddInput, count)
	for i := range out {
		out[i] = book.AddInput{
			Title:       fmt.Sprintf("The %s of %s", randomWord(rng), randomWord(rng)),
			Author:      authors[rng.Intn(len(authors))],
			Format:      book.Formats[rng.Intn(len(book.Formats))],
			PublishedAt: fmt.Sprintf("%d-01-01", 1950+rng.Intn(75)),
		}
	}
	return out
}

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}
