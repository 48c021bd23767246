package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rpi3Fixture = "../../internal/auxv/testdata/linux-rpi3.auxv"
	vboxFixture = "../../internal/auxv/testdata/macos-virtualbox-linux-x86-4850HQ.auxv"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRawFromFixture(t *testing.T) {
	out, _, err := run(t, "raw", "--auxv-path", rpi3Fixture, "--arch", "arm")
	require.NoError(t, err)
	assert.Equal(t, "arch      arm\nhwcap     0x3fb0d6\nhwcap2    0x10\n", out)
}

func TestRawIncompleteFixture(t *testing.T) {
	_, _, err := run(t, "raw", "--auxv-path", vboxFixture, "--arch", "arm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capabilities unknown")
}

func TestRawMissingFile(t *testing.T) {
	_, _, err := run(t, "raw", "--auxv-path", filepath.Join(t.TempDir(), "nope"), "--arch", "arm64")
	require.Error(t, err)
}

func TestShowJSON(t *testing.T) {
	out, _, err := run(t, "show", "--auxv-path", rpi3Fixture, "--arch", "arm", "-o", "json")
	require.NoError(t, err)

	var r struct {
		Arch     string   `json:"arch"`
		Source   string   `json:"source"`
		HWCap    string   `json:"hwcap"`
		HWCap2   string   `json:"hwcap2"`
		Features []string `json:"features"`
		Machine  any      `json:"machine"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "arm", r.Arch)
	assert.Equal(t, "auxv", r.Source)
	assert.Equal(t, "0x3fb0d6", r.HWCap)
	assert.Equal(t, "0x10", r.HWCap2)
	assert.Contains(t, r.Features, "neon")
	assert.Nil(t, r.Machine)
}

func TestShowIsDefault(t *testing.T) {
	out, _, err := run(t, "--auxv-path", rpi3Fixture, "--arch", "arm")
	require.NoError(t, err)
	assert.Contains(t, out, "source    auxv\n")
	assert.Contains(t, out, "features  crc32 edsp evtstrm")
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "check", "--auxv-path", rpi3Fixture, "--arch", "arm", "neon", "VFPv4")
	require.NoError(t, err)
	assert.Contains(t, out, "check     ok\n")

	out, _, err = run(t, "check", "--auxv-path", rpi3Fixture, "--arch", "arm", "neon", "sha2", "aes")
	require.EqualError(t, err, "missing CPU features: aes, sha2")
	assert.Contains(t, out, "missing   aes sha2\n")
}

func TestCheckNeedsArgs(t *testing.T) {
	_, _, err := run(t, "check")
	require.Error(t, err)
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := run(t, "raw", "--format", "yaml")
	require.ErrorContains(t, err, "invalid format")

	_, _, err = run(t, "raw", "--arch", "wasm")
	require.ErrorContains(t, err, "unknown architecture")
}

func TestForeignArchNeedsDump(t *testing.T) {
	if runtime.GOARCH == "arm" {
		t.Skip("fixture arch is the native arch")
	}
	_, _, err := run(t, "raw", "--arch", "arm")
	require.ErrorContains(t, err, "needs a captured auxv dump")

	_, _, err = run(t, "show", "--arch", "arm")
	require.ErrorContains(t, err, "needs a captured auxv dump")
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("HWCAP_FORMAT", "json")
	t.Setenv("HWCAP_ARCH", "arm")
	t.Setenv("HWCAP_AUXV_PATH", rpi3Fixture)

	out, _, err := run(t, "raw")
	require.NoError(t, err)
	var r map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, map[string]string{"arch": "arm", "hwcap": "0x3fb0d6", "hwcap2": "0x10"}, r)

	// Flags still win over the environment.
	out, _, err = run(t, "raw", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "arch      arm\nhwcap     0x3fb0d6\nhwcap2    0x10\n", out)
}

func TestDebugLogging(t *testing.T) {
	_, stderr, err := run(t, "raw", "--log.level", "debug", "--arch", "arm",
		"--auxv-path", rpi3Fixture)
	require.NoError(t, err)
	// raw with a dump reads the file directly and logs nothing.
	assert.Empty(t, stderr)

	_, stderr, err = run(t, "show", "--log.level", "debug", "--arch", "arm",
		"--auxv-path", vboxFixture)
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=debug")
	assert.Contains(t, stderr, "falling back to file")
}
