package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"git.gammaspectra.live/P2Pool/progpow/progpow"
	"git.gammaspectra.live/P2Pool/progpow/progpow/dataset"
	"git.gammaspectra.live/P2Pool/progpow/types"
	"git.gammaspectra.live/P2Pool/progpow/utils"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testHeader = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

var (
	testMix   = types.MustHashFromString("64127fabd519acd7845d0260cff43729af6aba3dd7923a29e73715708b5849a6")
	testFinal = types.MustHashFromString("4d027c72cee4689ba3d5fd163304ec6b96d996bcf30fbc1a7f1f5bdf2059cb59")
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("nonce", "0")
	v.SetDefault("period-length", progpow.DefaultPeriodLength)
	v.SetDefault("lane-routines", 1)
	v.SetDefault("sequence-cache", "lru")
	v.SetDefault("sequence-cache-size", progpow.DefaultSequenceCacheSize)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func runTestHash(t *testing.T, values map[string]any) (result hashResult) {
	opts, err := hashOptionsFromViper(newTestViper(values))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runHash(opts, &buf))
	require.NoError(t, utils.UnmarshalJSON(buf.Bytes(), &result))
	return result
}

func TestHashSynthetic(t *testing.T) {
	result := runTestHash(t, map[string]any{
		"header":       testHeader,
		"nonce":        "0x123456789ABCDEF0",
		"block":        100,
		"dataset-size": 1024,
		"synthetic":    true,
	})

	require.Equal(t, testMix, result.Mix)
	require.Equal(t, testFinal, result.Final)
	require.Equal(t, uint64(0x123456789ABCDEF0), result.Nonce)
	require.Equal(t, uint64(0), result.Period)
	require.False(t, result.Verified)
	require.Equal(t, progpow.DefaultConfig, result.Config)

	result = runTestHash(t, map[string]any{
		"header":         testHeader,
		"nonce":          "1311768467463790320",
		"block":          100,
		"dataset-size":   1024,
		"synthetic":      true,
		"mix":            testMix.String(),
		"lane-routines":  4,
		"sequence-cache": "none",
	})
	require.Equal(t, testFinal, result.Final)
	require.True(t, result.Verified)
	require.Equal(t, 4, result.Config.LaneRoutines)
	require.Equal(t, progpow.SequenceCacheNone, result.Config.SequenceCache)
}

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prevWriter, prevLevel := utils.LogWriter, utils.GlobalLogLevel
	prevFile, prevFunc := utils.LogFile, utils.LogFunc
	utils.LogWriter = &buf
	t.Cleanup(func() {
		utils.LogWriter, utils.GlobalLogLevel = prevWriter, prevLevel
		utils.LogFile, utils.LogFunc = prevFile, prevFunc
	})
	return &buf
}

func TestHashDebugLog(t *testing.T) {
	log := captureLog(t)

	dir := t.TempDir()
	// 100 trailing bytes past the last full item
	data := make([]byte, 1024+100)
	dagPath := filepath.Join(dir, "dag.bin")
	require.NoError(t, os.WriteFile(dagPath, data, 0o600))
	cachePath := filepath.Join(dir, "cache.bin")
	require.NoError(t, os.WriteFile(cachePath, dataset.AppendCache(nil, dataset.SequentialCache()), 0o600))

	result := runTestHash(t, map[string]any{
		"header": testHeader,
		"dag":    dagPath,
		"cache":  cachePath,
		"debug":  true,
	})
	require.Equal(t, uint64(len(data)), result.DatasetSize)

	out := log.String()
	require.Contains(t, out, "NOTICE dataset file")
	require.Contains(t, out, "trailing 100 bytes")
	require.Contains(t, out, `hasher config {"period_length":18446744073709551615`)
	require.Contains(t, out, "mix = "+result.Mix.String())
}

func TestLogCaller(t *testing.T) {
	log := captureLog(t)

	logCaller = true
	defer func() {
		logCaller = false
	}()
	initConfig()
	require.True(t, utils.LogFile)
	require.True(t, utils.LogFunc)

	utils.Errorf("Test", "failure %d", 1)
	require.Contains(t, log.String(), "hash_test.go:")
	require.Contains(t, log.String(), "[Test] ERROR failure 1")
}

func TestHashMismatch(t *testing.T) {
	badMix := testMix
	badMix[31] ^= 1

	opts, err := hashOptionsFromViper(newTestViper(map[string]any{
		"header":       testHeader,
		"nonce":        "0x123456789ABCDEF0",
		"block":        100,
		"dataset-size": 1024,
		"synthetic":    true,
		"mix":          badMix.String(),
	}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.ErrorIs(t, runHash(opts, &buf), progpow.ErrMixMismatch)
	require.Zero(t, buf.Len())
}

func TestHashFiles(t *testing.T) {
	dir := t.TempDir()

	data := make(dataset.Memory, 4096)
	for i := range data {
		data[i] = byte(i * 13)
	}
	dagPath := filepath.Join(dir, "dag.bin")
	require.NoError(t, os.WriteFile(dagPath, data, 0o600))

	cache := dataset.SequentialCache()
	cachePath := filepath.Join(dir, "cache.bin")
	require.NoError(t, os.WriteFile(cachePath, dataset.AppendCache(nil, cache), 0o600))

	hasher, err := progpow.NewHasher(progpow.DefaultConfig)
	require.NoError(t, err)
	header := types.MustHashFromString(testHeader)
	mix, final, err := hasher.Hash(header, 42, uint64(len(data)), 7, cache, data)
	require.NoError(t, err)

	mmapModes := []bool{false}
	if runtime.GOOS != "windows" && runtime.GOOS != "plan9" {
		mmapModes = append(mmapModes, true)
	}

	for _, mmap := range mmapModes {
		result := runTestHash(t, map[string]any{
			"header": testHeader,
			"nonce":  "42",
			"block":  7,
			"dag":    dagPath,
			"cache":  cachePath,
			"mmap":   mmap,
		})
		require.Equal(t, mix, result.Mix)
		require.Equal(t, final, result.Final)
		require.Equal(t, uint64(len(data)), result.DatasetSize)
	}
}

func TestHashRawHeader(t *testing.T) {
	raw := "f90214a0"
	result := runTestHash(t, map[string]any{
		"header-raw":   raw,
		"dataset-size": 2048,
		"synthetic":    true,
	})
	require.Equal(t, progpow.HeaderHash([]byte{0xf9, 0x02, 0x14, 0xa0}), result.Header)
}

func TestHashOptionErrors(t *testing.T) {
	for name, values := range map[string]map[string]any{
		"NoHeader":        {"synthetic": true, "dataset-size": 1024},
		"BothHeaders":     {"header": testHeader, "header-raw": "00", "synthetic": true, "dataset-size": 1024},
		"BadHeader":       {"header": "00", "synthetic": true, "dataset-size": 1024},
		"BadNonce":        {"header": testHeader, "nonce": "x", "synthetic": true, "dataset-size": 1024},
		"BadMix":          {"header": testHeader, "mix": "00", "synthetic": true, "dataset-size": 1024},
		"NoDataset":       {"header": testHeader},
		"SyntheticAndDag": {"header": testHeader, "synthetic": true, "dataset-size": 1024, "dag": "dag.bin"},
		"SyntheticSize":   {"header": testHeader, "synthetic": true},
		"BadCacheMode":    {"header": testHeader, "synthetic": true, "dataset-size": 1024, "sequence-cache": "disk"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := hashOptionsFromViper(newTestViper(values))
			require.Error(t, err)
		})
	}
}
