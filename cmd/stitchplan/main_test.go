package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/surround.view/internal/httputil"
	"github.com/banshee-data/surround.view/internal/stitch"
)

const rigFile = "../../config/rig.defaults.json"

func newTestCLI(client httputil.HTTPClient) (*cli, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &cli{stdout: &stdout, stderr: &stderr, client: client}, &stdout, &stderr
}

func TestRun_Plan(t *testing.T) {
	c, stdout, _ := newTestCLI(nil)
	require.NoError(t, c.run([]string{"-config", rigFile, "plan"}))

	var plan stitch.Plan
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &plan))
	assert.Equal(t, 3600, plan.OutputWidth)
	assert.Len(t, plan.CopyAreas, 5)
}

func TestRun_Verify(t *testing.T) {
	c, stdout, _ := newTestCLI(nil)
	require.NoError(t, c.run([]string{"-config", rigFile, "verify"}))
	assert.Contains(t, stdout.String(), "ok: 5 copy areas and 4 overlaps tile 3600 columns")
}

func TestRun_Summary(t *testing.T) {
	c, stdout, _ := newTestCLI(nil)
	require.NoError(t, c.run([]string{"-config", rigFile, "summary"}))

	var sum map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &sum))
	assert.EqualValues(t, 2400, sum["total_copy_width"])
}

func TestRun_PlotAndHTML(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "layout.png")
	page := filepath.Join(dir, "layout.html")

	c, _, _ := newTestCLI(nil)
	require.NoError(t, c.run([]string{"-config", rigFile, "plot", "-o", png}))
	require.NoError(t, c.run([]string{"-config", rigFile, "html", "-o", page}))

	data, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	data, err = os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Copy areas")
}

func TestRun_Mask(t *testing.T) {
	mask := filepath.Join(t.TempDir(), "mask.png")

	c, stdout, _ := newTestCLI(nil)
	require.NoError(t, c.run([]string{"-config", rigFile, "mask", "-o", mask, "-w", "180"}))
	assert.Contains(t, stdout.String(), "wrote ")

	f, err := os.Open(mask)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 180, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"-config", rigFile},
		{"-config", rigFile, "bogus"},
		{"-nope"},
	}
	for _, args := range tests {
		c, _, stderr := newTestCLI(nil)
		err := c.run(args)
		assert.ErrorIs(t, err, errUsage, "args %v", args)
		assert.NotEmpty(t, stderr.String())
	}
}

func TestRun_OutputOutsideAllowedDirs(t *testing.T) {
	c, _, _ := newTestCLI(nil)
	err := c.run([]string{"-config", rigFile, "plot", "-o", "/proc/self/layout.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be within")
}

func TestRun_BadConfig(t *testing.T) {
	c, _, _ := newTestCLI(nil)
	err := c.run([]string{"-config", filepath.Join(t.TempDir(), "missing.json"), "plan"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, errUsage))
}

func TestRun_Push(t *testing.T) {
	mock := httputil.NewMockHTTPClient().
		AddResponse(http.StatusOK, `{"camera_num":4,"copy_areas":[{},{},{},{},{}]}`).
		AddResponse(http.StatusCreated, `{"id":"abc","rig_name":"van"}`)
	c, stdout, _ := newTestCLI(mock)

	require.NoError(t, c.run([]string{"-config", rigFile, "push", "-server", "http://planner:9000", "-name", "van"}))
	assert.Equal(t, "stored plan abc for rig van (5 copy areas)\n", stdout.String())

	require.Equal(t, 2, mock.RequestCount())
	put := mock.GetRequest(0)
	assert.Equal(t, http.MethodPut, put.Method)
	assert.Equal(t, "http://planner:9000/api/rig?name=van", put.URL.String())
	body, err := io.ReadAll(put.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `"cameras"`))

	post := mock.GetRequest(1)
	assert.Equal(t, http.MethodPost, post.Method)
	assert.Equal(t, "/api/plans", post.URL.Path)
}

func TestRun_PushRejected(t *testing.T) {
	mock := httputil.NewMockHTTPClient().
		AddResponse(http.StatusUnprocessableEntity, `{"error":"geometry error"}`)
	c, _, _ := newTestCLI(mock)

	err := c.run([]string{"-config", rigFile, "push"})
	var se *httputil.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Equal(t, 1, mock.RequestCount())
}
