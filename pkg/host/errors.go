// pkg/host/errors.go
// Copyright(c) 2025 watersalute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package host

import "errors"

var (
	ErrAssetNotFound = errors.New("visual asset not found")
)
