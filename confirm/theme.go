//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package confirm

// Theme is a theme variant applied to a button. Themes in the same group
// replace each other: a button has at most one color, one variant and one
// size.
type Theme struct {
	group string
	name  string
}

// Name returns the theme name as rendered on the control.
func (t Theme) Name() string {
	return t.name
}

const (
	groupColor   = "color"
	groupVariant = "variant"
	groupSize    = "size"
)

var themeGroups = []string{groupColor, groupVariant, groupSize}

var (
	ColorPrimary  = Theme{groupColor, "primary"}
	ColorError    = Theme{groupColor, "error"}
	ColorSuccess  = Theme{groupColor, "success"}
	ColorContrast = Theme{groupColor, "contrast"}

	VariantPrimary        = Theme{groupVariant, "primary"}
	// VariantSecondary is the default look and clears any other variant.
	VariantSecondary      = Theme{groupVariant, ""}
	VariantTertiary       = Theme{groupVariant, "tertiary"}
	VariantTertiaryInline = Theme{groupVariant, "tertiary-inline"}

	SizeSmall  = Theme{groupSize, "small"}
	SizeNormal = Theme{groupSize, ""}
	SizeLarge  = Theme{groupSize, "large"}
)

type themeSet map[string]string

func (s themeSet) apply(t Theme) {
	if t.name == "" {
		delete(s, t.group)
		return
	}
	s[t.group] = t.name
}

func (s themeSet) names() []string {
	var res []string
	for _, g := range themeGroups {
		if n, ok := s[g]; ok {
			res = append(res, n)
		}
	}
	return res
}
