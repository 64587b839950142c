package info

import (
	"fmt"
	"strings"
)

// String implements fmt.Stringer for AssetInfo
func (a AssetInfo) String() string {
	return fmt.Sprintf(
		"AssetInfo{\n"+
			"  Name:       %s\n"+
			"  SzDecimals: %d\n"+
			"}",
		a.Name, a.SzDecimals,
	)
}

// String implements fmt.Stringer for Meta
func (m Meta) String() string {
	return fmt.Sprintf(
		"Meta{\n"+
			"  Universe: %s\n"+
			"}",
		formatSlice(m.Universe),
	)
}

// String implements fmt.Stringer for SpotAssetInfo
func (s SpotAssetInfo) String() string {
	return fmt.Sprintf(
		"SpotAssetInfo{\n"+
			"  Name:        %s\n"+
			"  Tokens:      [%d, %d]\n"+
			"  Index:       %d\n"+
			"  IsCanonical: %v\n"+
			"}",
		s.Name, s.Tokens[0], s.Tokens[1], s.Index, s.IsCanonical,
	)
}

// String implements fmt.Stringer for SpotTokenInfo
func (s SpotTokenInfo) String() string {
	evmContract := ""
	if s.EvmContract != nil {
		evmContract = *s.EvmContract
	}

	fullName := ""
	if s.FullName != nil {
		fullName = *s.FullName
	}

	return fmt.Sprintf(
		"SpotTokenInfo{\n"+
			"  Name:        %s\n"+
			"  SzDecimals:  %d\n"+
			"  WeiDecimals: %d\n"+
			"  Index:       %d\n"+
			"  TokenId:     %s\n"+
			"  IsCanonical: %v\n"+
			"  EvmContract: %s\n"+
			"  FullName:    %s\n"+
			"}",
		s.Name, s.SzDecimals, s.WeiDecimals, s.Index, s.TokenId,
		s.IsCanonical, evmContract, fullName,
	)
}

// String implements fmt.Stringer for SpotMeta
func (s SpotMeta) String() string {
	return fmt.Sprintf(
		"SpotMeta{\n"+
			"  Universe: %s\n"+
			"  Tokens:   %s\n"+
			"}",
		formatSlice(s.Universe),
		formatSlice(s.Tokens),
	)
}

func indentString(s string, spaces int64) string {
	indent := strings.Repeat(" ", int(spaces))
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func formatSlice[T fmt.Stringer](items []T) string {
	if len(items) == 0 {
		return "[]"
	}
	var buf strings.Builder
	buf.WriteString("[\n")
	for i, item := range items {
		buf.WriteString(fmt.Sprintf("    %s", indentString(item.String(), 4)))
		if i < len(items)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("  ]")
	return buf.String()
}
