//go:build !unix

package main

import "errors"

func mapDataset(path string) (datasetFile, error) {
	return nil, errors.New("--mmap is only supported on unix")
}
