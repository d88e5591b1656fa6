//go:build unix

package main

import "git.gammaspectra.live/P2Pool/progpow/progpow/dataset"

func mapDataset(path string) (datasetFile, error) {
	return dataset.MapFile(path)
}
