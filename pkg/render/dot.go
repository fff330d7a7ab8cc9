package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hitset/pkg/hitset"
	"github.com/matzehuels/hitset/pkg/set"
)

// coverFill is the fill color of elements in the cover.
const coverFill = "#7fc8a9"

// ToDOT converts an instance and its cover to Graphviz DOT format.
// Pass an empty cover to draw the instance alone. Elements of the cover that
// appear in no set are drawn unconnected.
func ToDOT[E comparable](inst hitset.Instance[E], cover set.Set[E]) string {
	var buf bytes.Buffer
	buf.WriteString("digraph HittingSet {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	all := make([]set.Set[E], 0, len(inst)+1)
	all = append(all, inst...)
	all = append(all, cover)
	elems := set.Union(all...).Elements()
	ids := make(map[E]string, len(elems))
	for i, e := range elems {
		ids[e] = fmt.Sprintf("e%d", i)
	}

	for i := range inst {
		fmt.Fprintf(&buf, "  s%d [label=\"S%d\", shape=box];\n", i, i+1)
	}
	for _, e := range elems {
		attrs := fmt.Sprintf("label=%q, shape=ellipse", fmt.Sprint(e))
		if cover.Contains(e) {
			attrs += fmt.Sprintf(", fillcolor=%q, penwidth=2", coverFill)
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", ids[e], attrs)
	}

	buf.WriteString("\n")
	for i, s := range inst {
		for e := range s.All() {
			fmt.Fprintf(&buf, "  s%d -> %s;\n", i, ids[e])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT document to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the drawing starts at the origin
// and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
