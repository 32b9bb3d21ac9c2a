// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package d3d11

import (
	"fmt"

	"github.com/gogpu/d3dshim"
)

// FeatureLevel is a Direct3D feature level. Values match D3D_FEATURE_LEVEL.
type FeatureLevel uint32

// Feature levels.
const (
	FeatureLevel9_1  FeatureLevel = 0x9100
	FeatureLevel9_2  FeatureLevel = 0x9200
	FeatureLevel9_3  FeatureLevel = 0x9300
	FeatureLevel10_0 FeatureLevel = 0xa000
	FeatureLevel10_1 FeatureLevel = 0xa100
	FeatureLevel11_0 FeatureLevel = 0xb000
	FeatureLevel11_1 FeatureLevel = 0xb100
	FeatureLevel12_0 FeatureLevel = 0xc000
	FeatureLevel12_1 FeatureLevel = 0xc100
)

// maxFeatureLevel is the highest level devices are created with.
const maxFeatureLevel = FeatureLevel11_0

// defaultFeatureLevels are probed, in order, when the caller names none.
var defaultFeatureLevels = []FeatureLevel{
	FeatureLevel11_0, FeatureLevel10_1,
	FeatureLevel10_0, FeatureLevel9_3,
	FeatureLevel9_2, FeatureLevel9_1,
}

// String returns the level as "11_0".
func (fl FeatureLevel) String() string {
	major, minor := uint32(fl)>>12, (uint32(fl)>>8)&0xf
	if fl&0xff != 0 || major < 9 || major > 12 {
		return fmt.Sprintf("FeatureLevel(%#x)", uint32(fl))
	}
	return fmt.Sprintf("%d_%d", major, minor)
}

// CheckFeatureLevelSupport reports whether devices can be created with fl.
func CheckFeatureLevelSupport(fl FeatureLevel) bool {
	return fl >= FeatureLevel9_1 && fl <= maxFeatureLevel
}

// selectFeatureLevel returns the first supported level of levels, which the
// caller orders from most to least preferred.
func selectFeatureLevel(levels []FeatureLevel) (FeatureLevel, bool) {
	if len(levels) == 0 {
		levels = defaultFeatureLevels
	}
	for _, fl := range levels {
		d3dshim.Logger().Debug("d3d11: probing feature level", "level", fl)
		if CheckFeatureLevelSupport(fl) {
			return fl, true
		}
	}
	return 0, false
}
