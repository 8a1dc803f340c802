package generator

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatDot  Format = "dot"
	FormatHTML Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "dot", "graph", "graphviz":
		return FormatDot, nil
	case "html", "document":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// RankDir is the Graphviz rankdir attribute.
type RankDir string

const (
	TopToBottom RankDir = "TB"
	LeftToRight RankDir = "LR"
	BottomToTop RankDir = "BT"
	RightToLeft RankDir = "RL"
)

func ParseRankDir(s string) (RankDir, error) {
	switch d := RankDir(strings.ToUpper(s)); d {
	case TopToBottom, LeftToRight, BottomToTop, RightToLeft:
		return d, nil
	case "":
		return LeftToRight, nil
	}
	return "", fmt.Errorf("unsupported rank direction %q", s)
}

type Options struct {
	RankDir         RankDir
	OnlyKeyColumns  bool
	OnlyRelated     bool
	ShowConstraints bool
}

func DefaultOptions() Options {
	return Options{RankDir: LeftToRight}
}
