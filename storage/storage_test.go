package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktikasud-backend/config"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	st, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	id := uuid.MustParse("3f2c8a9e-1b4d-4c7e-9a01-5d6e7f8a9b0c")

	t.Run("Should round-trip an uploaded document", func(t *testing.T) {
		path, err := st.Upload(ctx, id, "решение суда.PDF", strings.NewReader("%PDF-1.4"))
		require.NoError(t, err)
		assert.Equal(t, "3f/"+id.String()+"_решение_суда.pdf", path)

		rc, err := st.Download(ctx, path)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))

		require.NoError(t, st.Delete(ctx, path))
		_, err = st.Download(ctx, path)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, st.Delete(ctx, path))
	})

	t.Run("Should refuse paths outside the base directory", func(t *testing.T) {
		_, err := st.Download(ctx, "../../etc/passwd")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestNew(t *testing.T) {
	t.Run("Should build local storage from config", func(t *testing.T) {
		st, err := New(&config.Config{StorageType: "local", StorageLocalPath: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &LocalStorage{}, st)
	})

	t.Run("Should require a bucket for s3", func(t *testing.T) {
		_, err := New(&config.Config{StorageType: "s3"})
		assert.Error(t, err)
	})

	t.Run("Should reject unknown backends", func(t *testing.T) {
		_, err := New(&config.Config{StorageType: "ftp"})
		assert.Error(t, err)
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", contentType("a.PDF"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", contentType("a.docx"))
	assert.Equal(t, "application/octet-stream", contentType("a.bin"))
}
