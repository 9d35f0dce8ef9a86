// Package production provides integrations around the hsm engine: Graphviz
// export, Prometheus metrics and a serializing event pump.
package production

import (
	"bytes"
	"fmt"

	"github.com/comalice/hsm"
)

// ExportDOT generates Graphviz DOT source for the state hierarchy of chart.
// Composite states become clusters; states on the active path of current
// (which may be nil) are filled.
func ExportDOT(chart *hsm.Chart, current *hsm.State) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph HSM {
  rankdir=TB;
  compound=true;
  node [shape=box, fontsize=10, style=rounded];
`)

	active := make(map[*hsm.State]bool)
	for s := current; s != nil && s != hsm.Root; s = s.Parent() {
		active[s] = true
	}

	for _, top := range chart.Children(hsm.Root) {
		renderState(&buf, chart, top, active, "  ")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// renderState recursively renders states and subgraphs.
func renderState(buf *bytes.Buffer, chart *hsm.Chart, s *hsm.State, active map[*hsm.State]bool, indent string) {
	style := ""
	if active[s] {
		style = ` style="rounded,filled" fillcolor=lightgreen`
	}

	children := chart.Children(s)
	if len(children) == 0 {
		fmt.Fprintf(buf, "%s%q [label=%q%s];\n", indent, s.Name(), s.Name(), style)
		return
	}

	fmt.Fprintf(buf, "%ssubgraph \"cluster_%s\" {\n", indent, s.Name())
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, s.Name())
	if active[s] {
		fmt.Fprintf(buf, "%s  style=filled; fillcolor=orange;\n", indent)
	}
	fmt.Fprintf(buf, "%s  %q [label=%q shape=ellipse%s];\n", indent, s.Name(), s.Name(), style)
	for _, child := range children {
		renderState(buf, chart, child, active, indent+"  ")
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}
