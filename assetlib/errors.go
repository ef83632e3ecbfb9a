package assetlib

import "errors"

var (
	// ErrUnknownFormat is returned for a file extension with no decoder.
	ErrUnknownFormat = errors.New("assetlib: unknown library format")

	// ErrDuplicateAsset is returned when two tools or two hands share a name.
	ErrDuplicateAsset = errors.New("assetlib: duplicate asset name")

	// ErrAssetNotFound is returned by lookups of a missing name.
	ErrAssetNotFound = errors.New("assetlib: asset not found")

	// ErrUnnamedAsset is returned for an asset without a name.
	ErrUnnamedAsset = errors.New("assetlib: asset has no name")
)
