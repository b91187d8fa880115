package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/content-hub/content-hub/internal/extract"
)

func TestChunkText(t *testing.T) {
	t.Run("short text single chunk", func(t *testing.T) {
		chunks := chunkText("one paragraph", 100)
		assert.Equal(t, []string{"one paragraph"}, chunks)
	})

	t.Run("splits on paragraph boundaries", func(t *testing.T) {
		text := strings.Repeat("a", 60) + "\n\n" + strings.Repeat("b", 60)
		chunks := chunkText(text, 100)
		require.Len(t, chunks, 2)
		assert.Equal(t, strings.Repeat("a", 60), chunks[0])
		assert.Equal(t, strings.Repeat("b", 60), chunks[1])
	})

	t.Run("hard-splits oversized paragraphs", func(t *testing.T) {
		chunks := chunkText(strings.Repeat("x", 250), 100)
		require.Len(t, chunks, 3)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 100)
		}
	})

	t.Run("keeps multi-byte runes intact", func(t *testing.T) {
		chunks := chunkText(strings.Repeat("ü", 150), 101)
		require.Len(t, chunks, 3)
		for _, c := range chunks {
			assert.True(t, utf8.ValidString(c))
			assert.LessOrEqual(t, len(c), 101)
		}
		assert.Equal(t, strings.Repeat("ü", 150), strings.Join(chunks, ""))
	})

	t.Run("drops blank paragraphs", func(t *testing.T) {
		chunks := chunkText("first\n\n\n\n  \n\nsecond", 100)
		require.Len(t, chunks, 1)
		assert.Equal(t, "first\n\nsecond", chunks[0])
	})
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.md"), []byte("b"), 0o644))

	files, err := collectFiles([]string{dir})
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = collectFiles([]string{filepath.Join(dir, "missing.txt")})
	assert.Error(t, err)
}

func TestDocumentsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some reference text"), 0o644))

	docs, err := documentsFromFile(context.Background(), extract.New(""), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "some reference text", docs[0].Content)
	assert.Equal(t, "notes.txt", docs[0].Metadata["source"])
	assert.Equal(t, "0", docs[0].Metadata["chunk"])
}

func TestReadUploads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.md")
	require.NoError(t, os.WriteFile(path, []byte("# ref"), 0o644))

	uploads, err := readUploads([]string{path})
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, path, uploads[0].Name)

	_, err = readUploads([]string{filepath.Join(dir, "gone.md")})
	assert.Error(t, err)
}
