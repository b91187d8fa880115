package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/content-hub/content-hub/internal/extract"
	"github.com/content-hub/content-hub/internal/vectorstore"
)

// chunkSize bounds a single indexed document, in bytes of extracted text.
const chunkSize = 2000

var indexMigrate bool

var indexCmd = &cobra.Command{
	Use:   "index [paths...]",
	Short: "Load reference documents into the vector store",
	Long:  "Extracts text from the given files or directories, chunks it, embeds the chunks, and inserts them into the similarity-search store.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("index"); err != nil {
			return err
		}

		embedder, err := vectorstore.NewAzureEmbedder(cfg.Azure)
		if err != nil {
			return err
		}
		store, err := vectorstore.Open(ctx, cfg.Store, embedder)
		if err != nil {
			return err
		}
		defer store.Close()

		if indexMigrate {
			if err := store.Migrate(ctx); err != nil {
				return err
			}
		}

		extractor := extract.New(cfg.Extract.PdfToTextPath)
		files, err := collectFiles(args)
		if err != nil {
			return err
		}

		var total int
		for _, path := range files {
			docs, err := documentsFromFile(ctx, extractor, path)
			if err != nil {
				zap.L().Warn("skipping file", zap.String("path", path), zap.Error(err))
				continue
			}
			if len(docs) == 0 {
				continue
			}
			if err := store.AddDocuments(ctx, docs); err != nil {
				return eris.Wrapf(err, "index %s", path)
			}
			total += len(docs)
			zap.L().Info("indexed file", zap.String("path", path), zap.Int("chunks", len(docs)))
		}

		zap.L().Info("indexing complete", zap.Int("files", len(files)), zap.Int("chunks", total))
		return nil
	},
}

func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, eris.Wrapf(err, "stat %s", path)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, eris.Wrapf(err, "walk %s", path)
		}
	}
	return files, nil
}

func documentsFromFile(ctx context.Context, extractor *extract.Extractor, path string) ([]vectorstore.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	res := extractor.Extract(ctx, filepath.Base(path), data)
	if !res.OK() {
		return nil, res.Err
	}

	var docs []vectorstore.Document
	for i, chunk := range chunkText(res.Text, chunkSize) {
		docs = append(docs, vectorstore.Document{
			Content: chunk,
			Metadata: map[string]string{
				"source": filepath.Base(path),
				"chunk":  strconv.Itoa(i),
			},
		})
	}
	return docs, nil
}

// chunkText splits text into chunks of at most size bytes, preferring
// paragraph boundaries.
func chunkText(text string, size int) []string {
	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para) > size {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		for len(para) > size {
			cut := size
			for cut > 0 && !utf8.RuneStart(para[cut]) {
				cut--
			}
			if cut == 0 {
				cut = size
			}
			chunks = append(chunks, para[:cut])
			para = para[cut:]
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func init() {
	indexCmd.Flags().BoolVar(&indexMigrate, "migrate", false, "create the store table before indexing")
	rootCmd.AddCommand(indexCmd)
}
