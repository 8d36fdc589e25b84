package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pullback/internal/serialization"
)

func TestSineDataset(t *testing.T) {
	xs, ys := sineDataset(3)
	require.Len(t, xs, 3)
	assert.InDelta(t, -math.Pi, xs[0].At(0), 1e-12)
	assert.InDelta(t, 0, xs[1].At(0), 1e-12)
	assert.InDelta(t, 0, ys[1].At(0), 1e-12)
	assert.InDelta(t, math.Pi, xs[2].At(0), 1e-12)
}

func TestTrain_LossDecreases(t *testing.T) {
	first, err := trainWithArgs([]string{"-epochs", "1", "-samples", "8", "-hidden", "4"})
	require.NoError(t, err)

	last, err := trainWithArgs([]string{"-epochs", "200", "-samples", "8", "-hidden", "4"})
	require.NoError(t, err)
	assert.Less(t, last, first)
}

func TestTrain_InvalidConfig(t *testing.T) {
	_, err := trainWithArgs([]string{"-epochs", "0"})
	assert.Error(t, err)

	_, err = trainWithArgs([]string{"-unknown"})
	assert.Error(t, err)
}

func TestDemo(t *testing.T) {
	assert.NotPanics(t, runDemo)
}

func TestTrain_SaveAndInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sine.safetensors")

	_, err := trainWithArgs([]string{"-epochs", "2", "-samples", "4", "-hidden", "3", "-workers", "1", "-save", path})
	require.NoError(t, err)

	dict, metadata, err := serialization.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2", metadata["epochs"])
	assert.Len(t, dict, 4)
	assert.Equal(t, []int{3, 1}, []int(dict["[0].weight"].Shape))

	require.NoError(t, runInspect([]string{path}))
	assert.Error(t, runInspect(nil))
}

func TestTrain_LoadResumesFromSavedParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sine.safetensors")
	_, err := trainWithArgs([]string{"-epochs", "200", "-samples", "8", "-hidden", "4", "-workers", "1", "-save", path})
	require.NoError(t, err)

	dict, _, err := serialization.ReadFile(path)
	require.NoError(t, err)
	loaded, err := serialization.LoadStateDict(newModel(trainConfig{hidden: 4, seed: 7}), dict)
	require.NoError(t, err)
	assert.Equal(t, dict, serialization.StateDict(loaded))

	frozen := []string{"-epochs", "1", "-samples", "8", "-hidden", "4", "-workers", "1", "-lr", "0"}
	fresh, err := trainWithArgs(frozen)
	require.NoError(t, err)
	resumed, err := trainWithArgs(append(frozen, "-load", path))
	require.NoError(t, err)
	assert.Less(t, resumed, fresh)

	_, err = trainWithArgs([]string{"-epochs", "1", "-hidden", "5", "-load", path})
	assert.ErrorIs(t, err, serialization.ErrParameterMismatch)
}
