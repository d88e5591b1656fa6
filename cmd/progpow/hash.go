package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"git.gammaspectra.live/P2Pool/progpow/progpow"
	"git.gammaspectra.live/P2Pool/progpow/progpow/dataset"
	"git.gammaspectra.live/P2Pool/progpow/types"
	"git.gammaspectra.live/P2Pool/progpow/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	fasthex "github.com/tmthrgd/go-hex"
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Compute the mix and final digest of a header and nonce",
	Long: `Computes the mix and final digest of a header and nonce, printed as JSON.

The dataset is read from --dag and the compressed cache from --cache, or
--synthetic uses a generated stand-in for both. When --mix is given the
computed mix digest is checked against it and the command fails on mismatch.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hashOptionsFromViper(viper.GetViper())
		if err != nil {
			return err
		}
		return runHash(opts, cmd.OutOrStdout())
	},
}

//nolint:gochecknoinits
func init() {
	SetupHashFlags(hashCmd)
	rootCmd.AddCommand(hashCmd)
}

func SetupHashFlags(cmd *cobra.Command) {
	// Input
	cmd.Flags().String("header", "", "32-byte header digest as hex")
	cmd.Flags().String("header-raw", "", "Encoded block header as hex, its Keccak-256 is used as header digest")
	cmd.Flags().String("nonce", "0", "Nonce, decimal or 0x prefixed hex")
	cmd.Flags().Uint64("block", 0, "Block number, selects the program period")
	cmd.Flags().String("mix", "", "Claimed mix digest as hex. When set the hash is verified against it")

	// Dataset
	cmd.Flags().String("dag", "", "Full dataset file")
	cmd.Flags().Bool("mmap", false, "Map the dataset file into memory instead of reading on demand")
	cmd.Flags().Uint64("dataset-size", 0, "Dataset size in bytes. Defaults to the dataset file size")
	cmd.Flags().String("cache", "", "Compressed cache file, 16 KiB of little-endian words")
	cmd.Flags().Bool("synthetic", false, "Use a generated dataset and cache instead of files")

	// Hasher
	cmd.Flags().Uint64("period-length", progpow.DefaultPeriodLength, "Blocks per program period")
	cmd.Flags().Int("lane-routines", 1, "Goroutines lanes are split across")
	cmd.Flags().String("sequence-cache", progpow.SequenceCacheLRU.String(), "Period sequence cache: lru, map or none")
	cmd.Flags().Int("sequence-cache-size", progpow.DefaultSequenceCacheSize, "Periods kept in the sequence cache")
}

type hashOptions struct {
	Header      types.Hash
	Nonce       uint64
	BlockNumber uint64
	Mix         *types.Hash

	DagPath     string
	Mmap        bool
	DatasetSize uint64
	CachePath   string
	Synthetic   bool

	Debug bool

	Config progpow.Config
}

type hashResult struct {
	Header      types.Hash `json:"header"`
	Nonce       uint64     `json:"nonce"`
	BlockNumber uint64     `json:"block_number"`
	Period      uint64     `json:"period"`
	DatasetSize uint64     `json:"dataset_size"`
	Mix         types.Hash `json:"mix"`
	Final       types.Hash `json:"final"`
	Verified    bool       `json:"verified,omitempty"`

	// Config effective hasher configuration, defaults filled in
	Config progpow.Config `json:"config"`
}

func hashOptionsFromViper(v *viper.Viper) (opts hashOptions, err error) {
	switch {
	case v.GetString("header") != "" && v.GetString("header-raw") != "":
		return opts, errors.New("only one of --header and --header-raw can be set")
	case v.GetString("header") != "":
		if opts.Header, err = types.HashFromString(v.GetString("header")); err != nil {
			return opts, fmt.Errorf("invalid header: %w", err)
		}
	case v.GetString("header-raw") != "":
		raw, err := fasthex.DecodeString(v.GetString("header-raw"))
		if err != nil {
			return opts, fmt.Errorf("invalid raw header: %w", err)
		}
		opts.Header = progpow.HeaderHash(raw)
	default:
		return opts, errors.New("one of --header or --header-raw is required")
	}

	if opts.Nonce, err = strconv.ParseUint(v.GetString("nonce"), 0, 64); err != nil {
		return opts, fmt.Errorf("invalid nonce: %w", err)
	}
	opts.BlockNumber = v.GetUint64("block")

	if s := v.GetString("mix"); s != "" {
		mix, err := types.HashFromString(s)
		if err != nil {
			return opts, fmt.Errorf("invalid mix: %w", err)
		}
		opts.Mix = &mix
	}

	opts.DagPath = v.GetString("dag")
	opts.Mmap = v.GetBool("mmap")
	opts.DatasetSize = v.GetUint64("dataset-size")
	opts.CachePath = v.GetString("cache")
	opts.Synthetic = v.GetBool("synthetic")

	if opts.Synthetic {
		if opts.DagPath != "" || opts.CachePath != "" {
			return opts, errors.New("--synthetic cannot be combined with --dag or --cache")
		}
		if opts.DatasetSize == 0 {
			return opts, errors.New("--synthetic requires --dataset-size")
		}
	} else if opts.DagPath == "" || opts.CachePath == "" {
		return opts, errors.New("--dag and --cache are required unless --synthetic is set")
	}

	opts.Debug = v.GetBool("debug")

	opts.Config = progpow.Config{
		PeriodLength:      v.GetUint64("period-length"),
		LaneRoutines:      v.GetInt("lane-routines"),
		SequenceCacheSize: v.GetInt("sequence-cache-size"),
	}
	if opts.Config.SequenceCache, err = progpow.ParseSequenceCacheMode(v.GetString("sequence-cache")); err != nil {
		return opts, err
	}

	return opts, nil
}

type datasetFile interface {
	progpow.Lookup
	Size() uint64
	io.Closer
}

func openDataset(path string, mmap bool) (datasetFile, error) {
	if mmap {
		return mapDataset(path)
	}
	return dataset.OpenFile(path)
}

func runHash(opts hashOptions, w io.Writer) error {
	if opts.Debug {
		utils.GlobalLogLevel |= utils.LogLevelNotice | utils.LogLevelDebug
	}
	if utils.IsLogLevelDebug() && opts.Config.Tracer == nil {
		opts.Config.Tracer = progpow.LogTracer{}
	}

	hasher, err := progpow.NewHasher(opts.Config)
	if err != nil {
		return err
	}

	var (
		lookup      progpow.Lookup
		cache       []uint32
		datasetSize = opts.DatasetSize
	)

	if opts.Synthetic {
		lookup = dataset.Synthetic{}
		cache = dataset.SequentialCache()
	} else {
		f, err := openDataset(opts.DagPath, opts.Mmap)
		if err != nil {
			return fmt.Errorf("opening dataset: %w", err)
		}
		defer f.Close()

		if datasetSize == 0 {
			datasetSize = f.Size()
			if datasetSize%progpow.MixBytes != 0 {
				utils.Noticef("ProgPoW", "dataset file %s is %d bytes, trailing %d bytes are never read", opts.DagPath, datasetSize, datasetSize%progpow.MixBytes)
			}
		}
		lookup = f

		if cache, err = dataset.LoadCacheFile(opts.CachePath); err != nil {
			return fmt.Errorf("loading cache: %w", err)
		}
	}

	if utils.IsLogLevelDebug() {
		if config, err := utils.MarshalJSON(hasher.Config()); err == nil {
			utils.Debugf("ProgPoW", "hasher config %s", config)
		}
	}
	utils.Debugf("ProgPoW", "hashing header %s nonce %d block %d, dataset %d bytes", opts.Header, opts.Nonce, opts.BlockNumber, datasetSize)

	result := hashResult{
		Header:      opts.Header,
		Nonce:       opts.Nonce,
		BlockNumber: opts.BlockNumber,
		Period:      hasher.Period(opts.BlockNumber),
		DatasetSize: datasetSize,
		Config:      hasher.Config(),
	}

	if opts.Mix != nil {
		if result.Final, err = hasher.Verify(opts.Header, opts.Nonce, datasetSize, opts.BlockNumber, cache, lookup, *opts.Mix); err != nil {
			return err
		}
		result.Mix = *opts.Mix
		result.Verified = true
	} else {
		if result.Mix, result.Final, err = hasher.Hash(opts.Header, opts.Nonce, datasetSize, opts.BlockNumber, cache, lookup); err != nil {
			return err
		}
	}

	encoder := utils.NewJSONEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
