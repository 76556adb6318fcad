package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/andresuchdata/storeops/backend-go/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	calls []inventory.Kind
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, kind inventory.Kind) (string, error) {
	f.calls = append(f.calls, kind)
	if f.err != nil {
		return "", f.err
	}
	return "<" + string(kind) + ">\n", nil
}

func TestMenuLoop_DispatchesAndExits(t *testing.T) {
	r := &fakeRenderer{}
	var out bytes.Buffer

	err := menuLoop(context.Background(), r, strings.NewReader("1\n4\n7\n0\n5\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, []inventory.Kind{inventory.KindAll, inventory.KindBestsellers, inventory.KindOverallStatus}, r.calls)
	assert.Contains(t, out.String(), "<bestsellers>")
	assert.Contains(t, out.String(), "Bye.")
}

func TestMenuLoop_InvalidInput(t *testing.T) {
	r := &fakeRenderer{}
	var out bytes.Buffer

	err := menuLoop(context.Background(), r, strings.NewReader("9\nabc\n\n0\n"), &out)
	require.NoError(t, err)

	assert.Empty(t, r.calls)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid choice"))
}

func TestMenuLoop_EndOfInput(t *testing.T) {
	r := &fakeRenderer{}
	var out bytes.Buffer

	require.NoError(t, menuLoop(context.Background(), r, strings.NewReader("2\n"), &out))
	assert.Equal(t, []inventory.Kind{inventory.KindUrgentStock}, r.calls)
}

func TestMenuLoop_RenderErrorKeepsLooping(t *testing.T) {
	r := &fakeRenderer{err: errors.New("source down")}
	var out bytes.Buffer

	require.NoError(t, menuLoop(context.Background(), r, strings.NewReader("3\n0\n"), &out))
	assert.Contains(t, out.String(), "Report failed: source down")
}
