package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, fn func() error) (stdout string, err error) {
	t.Helper()
	oldOut := os.Stdout
	defer func() { os.Stdout = oldOut }()

	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() { io.Copy(&buf, r); close(done) }()

	err = fn()
	w.Close()
	<-done
	return buf.String(), err
}

func TestHelp(t *testing.T) {
	out, err := captureOutput(t, func() error {
		return run([]string{"help", "bundle"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "bundle FLAGS")
}

func TestUnknownCommand(t *testing.T) {
	err := run([]string{"frobnicate"})
	require.Error(t, err)
}

func TestBundleRequiresModule(t *testing.T) {
	err := run([]string{"bundle"})
	require.Error(t, err)
}

func TestBundleCommand(t *testing.T) {
	out, err := captureOutput(t, func() error {
		return run([]string{"bundle", "-module", filepath.Join("testdata", "shop")})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type Product")
	require.Contains(t, out, "type Review")
	require.Contains(t, out, "products: [Product!]!")
	require.Contains(t, out, "reviews(productId: ID!): [Review!]!")
	require.Contains(t, out, "type Query")
	require.Contains(t, out, "type Mutation")
	require.Contains(t, out, "query: Query")
}

func TestBundleOutFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "schema.graphql")
	err := run([]string{"bundle", "-module", filepath.Join("testdata", "shop"), "-out", outFile})
	require.NoError(t, err)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "type Product")
}

func TestBundleRootKeyOverride(t *testing.T) {
	out, err := captureOutput(t, func() error {
		return run([]string{"bundle", "-module", filepath.Join("testdata", "shop"), "-root.query", "RootQuery"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type RootQuery")
	require.Contains(t, out, "query: RootQuery")
}

func TestCheckCommand(t *testing.T) {
	err := run([]string{"check", "-module", filepath.Join("testdata", "shop")})
	require.NoError(t, err)
}

func TestCheckFormat(t *testing.T) {
	out, err := captureOutput(t, func() error {
		return run([]string{"check", "-format", "-module", filepath.Join("testdata", "shop")})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type Product")
}

func TestCheckInvalidSchema(t *testing.T) {
	err := run([]string{"check", "-module", filepath.Join("testdata", "broken")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid schema")
}
