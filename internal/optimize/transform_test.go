package optimize

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testContext(buf *bytes.Buffer) context.Context {
	logger := zerolog.New(buf)
	return logger.WithContext(context.Background())
}

func upper(text string, suffix string) (string, error) {
	return strings.ToUpper(text) + suffix, nil
}

func TestTransformApply(t *testing.T) {
	var logs bytes.Buffer
	tr := NewTransform("upper", upper, "!")

	f := &File{Path: "/src/a.txt", Relative: "a.txt", Contents: []byte("hello")}
	out := tr.Apply(testContext(&logs), f)

	require.Same(t, f, out)
	require.Equal(t, "HELLO!", string(out.Contents))
	require.Empty(t, logs.String())
	require.Equal(t, "upper", tr.Name())
}

func TestTransformApply_failurePassesOriginal(t *testing.T) {
	var logs bytes.Buffer
	tr := NewTransform("broken", func(string, struct{}) (string, error) {
		return "partial output", errors.New("unexpected token at 1:4")
	}, struct{}{})

	original := []byte("var = ;")
	f := &File{Path: "/src/bad.js", Relative: "bad.js", Contents: original}
	out := tr.Apply(testContext(&logs), f)

	require.Same(t, f, out)
	require.Equal(t, "var = ;", string(out.Contents))
	require.Equal(t, &original[0], &out.Contents[0], "contents should not be reallocated")

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], `"level":"warn"`)
	require.Contains(t, lines[0], `"optimizer":"broken"`)
	require.Contains(t, lines[0], `"path":"/src/bad.js"`)
	require.Contains(t, lines[0], "unexpected token at 1:4")
}

func TestTransformApply_recoversPanic(t *testing.T) {
	var logs bytes.Buffer
	tr := NewTransform("panicky", func(string, int) (string, error) {
		panic("boom")
	}, 0)

	f := &File{Path: "/src/a.css", Relative: "a.css", Contents: []byte("a{}")}
	out := tr.Apply(testContext(&logs), f)

	require.Equal(t, "a{}", string(out.Contents))
	require.Contains(t, logs.String(), "boom")
	require.Contains(t, logs.String(), `"optimizer":"panicky"`)
}

func TestTransformApply_nullFile(t *testing.T) {
	calls := 0
	tr := NewTransform("count", func(text string, _ struct{}) (string, error) {
		calls++
		return text, nil
	}, struct{}{})

	dir := &File{Path: "/src/dir", Relative: "dir"}
	out := tr.Apply(context.Background(), dir)

	require.Same(t, dir, out)
	require.Nil(t, out.Contents)
	require.Zero(t, calls)
}

func TestTransformApply_emptyContentIsProcessed(t *testing.T) {
	calls := 0
	tr := NewTransform("count", func(text string, _ struct{}) (string, error) {
		calls++
		return text, nil
	}, struct{}{})

	tr.Apply(context.Background(), &File{Path: "/src/empty.js", Relative: "empty.js", Contents: []byte{}})
	require.Equal(t, 1, calls)
}
