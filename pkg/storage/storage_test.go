package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"My Holiday Photo.JPG", "My_Holiday_Photo.JPG"},
		{"../../etc/passwd", "etc_passwd"},
		{`C:\Users\me\cv.docx`, "C_Users_me_cv.docx"},
		{"über cool?.pdf", "ber_cool.pdf"},
		{".hidden", "hidden"},
		{"...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeFolder(t *testing.T) {
	assert.Equal(t, "avatars", SanitizeFolder("avatars"))
	assert.Equal(t, "a/b", SanitizeFolder("a//b/"))
	assert.Equal(t, "etc", SanitizeFolder("../../etc"))
	assert.Equal(t, "", SanitizeFolder("../.."))
}

func TestCleanKey(t *testing.T) {
	valid := map[string]string{
		"uploads/a.png":         "uploads/a.png",
		"uploads//a.png":        "uploads/a.png",
		"uploads/./a.png":       "uploads/a.png",
		`uploads\avatars\a.png`: "uploads/avatars/a.png",
	}
	for in, want := range valid {
		got, err := CleanKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "  ", "/etc/passwd", "../secret", "uploads/../../secret", ".", `..\x`} {
		_, err := CleanKey(in)
		assert.ErrorIs(t, err, ErrInvalidKey, in)
	}
}

func TestLocal_PutOpenDelete(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "uploads")

	store, err := NewLocal(root)
	require.NoError(t, err)

	n, err := store.Put(ctx, "avatars/one.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.FileExists(t, filepath.Join(root, "avatars", "one.png"))

	rc, size, err := store.Open(ctx, "avatars/one.png")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, int64(9), size)

	require.NoError(t, store.Delete(ctx, "avatars/one.png"))
	assert.NoFileExists(t, filepath.Join(root, "avatars", "one.png"))

	assert.ErrorIs(t, store.Delete(ctx, "avatars/one.png"), ErrNotExist)
	_, _, err = store.Open(ctx, "avatars/one.png")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocal_RejectsEscapesAndDirectories(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	root := filepath.Join(base, "uploads")
	store, err := NewLocal(root)
	require.NoError(t, err)

	outside := filepath.Join(base, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

	assert.ErrorIs(t, store.Delete(ctx, "../outside.txt"), ErrInvalidKey)
	assert.FileExists(t, outside)

	_, err = store.Put(ctx, "../evil.txt", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrInvalidKey)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder"), 0755))
	assert.ErrorIs(t, store.Delete(ctx, "folder"), ErrNotExist)
	_, _, err = store.Open(ctx, "folder")
	assert.ErrorIs(t, err, ErrNotExist)
}
