package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awaitResult(t *testing.T, l Loader) Result {
	t.Helper()
	select {
	case r := <-l.Results():
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a load result")
		return Result{}
	}
}

func TestLoadModelDeliversContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "house.glb")
	require.NoError(t, os.WriteFile(path, []byte("glTFbinarypayload"), 0o644))

	l := NewLoader()
	defer l.Close()

	l.LoadModel(path)
	r := awaitResult(t, l)

	require.NoError(t, r.Err)
	assert.Equal(t, KindModel, r.Kind)
	assert.Equal(t, "house.glb", r.Name)
	assert.Equal(t, []byte("glTFbinarypayload"), r.Data)
}

func TestLoadModelRejectsUnknownExtension(t *testing.T) {
	l := NewLoader()
	defer l.Close()

	l.LoadModel("/tmp/model.docx")
	r := awaitResult(t, l)

	require.Error(t, r.Err)
	assert.ErrorIs(t, r.Err, ErrUnsupportedAsset)
	assert.Equal(t, "model.docx", r.Name)
	assert.Nil(t, r.Data)
}

func TestLoadModelMissingFileReportsError(t *testing.T) {
	l := NewLoader()
	defer l.Close()

	l.LoadModel(filepath.Join(t.TempDir(), "nope.obj"))
	r := awaitResult(t, l)

	require.Error(t, r.Err)
	assert.Equal(t, KindModel, r.Kind)
}

func TestLoadEnvironmentDeliversContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dusk.hdr")
	require.NoError(t, os.WriteFile(path, []byte("radiance"), 0o644))

	l := NewLoader()
	defer l.Close()

	l.LoadEnvironment(path)
	r := awaitResult(t, l)

	require.NoError(t, r.Err)
	assert.Equal(t, KindEnvironment, r.Kind)
	assert.Equal(t, "dusk.hdr", r.Name)
}

func TestLoadEnvironmentRejectsUnknownExtension(t *testing.T) {
	l := NewLoader()
	defer l.Close()

	l.LoadEnvironment("/tmp/sky.mp4")
	r := awaitResult(t, l)

	assert.ErrorIs(t, r.Err, ErrUnsupportedAsset)
}

func TestCloseDrainsInFlightLoads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	require.NoError(t, os.WriteFile(path, []byte("solid"), 0o644))

	l := NewLoader()
	l.LoadModel(path)

	done := make(chan struct{})
	var results []Result
	go func() {
		for r := range l.Results() {
			results = append(results, r)
		}
		close(done)
	}()

	l.Close()
	<-done

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}

func TestLoadAfterCloseIsIgnored(t *testing.T) {
	l := NewLoader()
	l.Close()

	// Must not panic or deliver on the closed channel.
	l.LoadModel("/tmp/late.glb")

	_, open := <-l.Results()
	assert.False(t, open)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "model", KindModel.String())
	assert.Equal(t, "environment", KindEnvironment.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
