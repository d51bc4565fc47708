package assets

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetPaths(t *testing.T) {
	cases := []struct {
		in        string
		wantImage string
		wantSound string
	}{
		{"hero.png", "images/hero.png", "sounds/hero.png"},
		{"assets/images/hero.png", "images/hero.png", "images/hero.png"},
		{"jump", "images/jump", "sounds/jump.wav"},
		{"/home/me/game/assets/sounds/jump.wav", "sounds/jump.wav", "sounds/jump.wav"},
		{"", "", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.wantImage, ImagePath(c.in))
			assert.Equal(t, c.wantSound, SoundPath(c.in))
		})
	}
}

func TestStoreReadsDiskFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "hero.png"), []byte("disk"), 0o644))

	s := Store{Dir: dir, Embedded: fstest.MapFS{
		"images/hero.png": {Data: []byte("embedded")},
		"images/coin.png": {Data: []byte("coin")},
	}}

	b, err := s.ReadFile(ImagePath("hero.png"))
	require.NoError(t, err)
	assert.Equal(t, "disk", string(b))

	b, err = s.ReadFile(ImagePath("coin.png"))
	require.NoError(t, err)
	assert.Equal(t, "coin", string(b))

	_, err = s.ReadFile(ImagePath("missing.png"))
	assert.Error(t, err)
}

func TestSoundNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sounds"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sounds", "boom.wav"), nil, 0o644))

	s := Store{Dir: dir, Embedded: fstest.MapFS{
		"sounds/jump.wav":        {},
		"sounds/meadow_loop.wav": {},
		"sounds/readme.txt":      {},
	}}
	names, err := s.SoundNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"boom", "jump", "meadow_loop"}, names)
}

func TestEmbeddedAssetsPresent(t *testing.T) {
	names, err := Store{}.SoundNames()
	require.NoError(t, err)
	assert.Contains(t, names, "jump")
	assert.Contains(t, names, "meadow"+LoopSuffix)

	_, err = Store{}.ReadFile(ImagePath("hero.png"))
	assert.NoError(t, err)
}
