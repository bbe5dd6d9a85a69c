package blob

import (
	"Moodboard/config"
	"Moodboard/pkg/errs"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagePath(t *testing.T) {
	assert.Equal(t, "Prompts/Final images moodboard/image7.jpg", ImagePath("Prompts/Final images moodboard", 7, "jpg"))
	assert.Equal(t, "p/image7.png", ImagePath("p/", 7, ".png"))
	assert.Equal(t, "image1.webp", ImagePath("", 1, "webp"))
}

func TestParseImageNumber(t *testing.T) {
	cases := map[string]struct {
		n  int64
		ok bool
	}{
		"Prompts/Final images moodboard/image12.jpg": {12, true},
		"image3.png":          {3, true},
		"p/imageX.jpg":        {0, false},
		"p/image.jpg":         {0, false},
		"p/photo4.jpg":        {0, false},
		"p/image5":            {0, false},
		"p/image0.jpg":        {0, false},
		"p/nested/image9.jpg": {9, true},
	}
	for key, want := range cases {
		n, ok := ParseImageNumber(key)
		assert.Equal(t, want.ok, ok, key)
		assert.Equal(t, want.n, n, key)
	}
}

func TestExtensionAndContentType(t *testing.T) {
	assert.Equal(t, "jpg", Extension("image/jpeg"))
	assert.Equal(t, "webp", Extension("image/webp"))
	assert.Equal(t, "image/jpeg", ContentType("a/image1.JPG"))
	assert.Equal(t, "image/png", ContentType("image1.png"))
	assert.Equal(t, "application/octet-stream", ContentType("image1"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	ok, err := store.Exists(ctx, "p/image1.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Get(ctx, "p/image1.jpg")
	assert.True(t, errs.IsBlobNotFound(err))

	require.NoError(t, store.Put(ctx, "p/image1.jpg", []byte("one"), "image/jpeg"))
	require.NoError(t, store.Put(ctx, "p/image2.jpg", []byte("two"), "image/jpeg"))
	require.NoError(t, store.Put(ctx, "q/image3.jpg", []byte("three"), "image/jpeg"))

	data, err := store.Get(ctx, "p/image1.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
	assert.Equal(t, "image/jpeg", store.ContentTypeOf("p/image1.jpg"))

	keys, err := store.List(ctx, "p/")
	require.NoError(t, err)
	assert.Equal(t, []string{"p/image1.jpg", "p/image2.jpg"}, keys)

	require.NoError(t, store.Delete(ctx, "p/image1.jpg"))
	ok, err = store.Exists(ctx, "p/image1.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewSelectsBackend(t *testing.T) {
	conf, err := config.Parse([]byte("blob:\n  driver: memory\n"))
	require.NoError(t, err)
	store, err := New(conf)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	conf.Blob.Driver = "ftp"
	_, err = New(conf)
	assert.EqualError(t, err, `unsupported blob driver "ftp"`)

	conf.Blob.Driver = config.BlobDriverOss
	_, err = New(conf)
	assert.Error(t, err)
}
