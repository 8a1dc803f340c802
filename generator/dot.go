package generator

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var plainID = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dotID quotes s unless it is already a valid bare Graphviz identifier.
func dotID(s string) string {
	if plainID.MatchString(s) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func renderDot(v *view) string {
	var b strings.Builder

	b.WriteString("digraph G {\n")
	b.WriteString("    node [shape=plaintext];\n")
	b.WriteString("    edge [color=red];\n")
	b.WriteString(fmt.Sprintf("    rankdir=%s;\n\n", v.RankDir))

	for _, t := range v.Tables {
		writeDotTable(&b, v, t)
	}

	for _, e := range v.Edges {
		b.WriteString(fmt.Sprintf("    %s:%s -> %s:%s;\n",
			dotID(e.From), dotID(e.FromPort), dotID(e.To), dotID(e.ToPort)))
	}
	for _, e := range v.Inherits {
		b.WriteString(fmt.Sprintf("    %s -> %s [color=\"blue\" style=\"dashed\"];\n",
			dotID(e.From), dotID(e.To)))
	}

	b.WriteString("}\n")
	return b.String()
}

func writeDotTable(b *strings.Builder, v *view, t tableView) {
	esc := html.EscapeString

	b.WriteString(fmt.Sprintf("    %s [\n", dotID(t.Node)))
	b.WriteString("        label = <\n")
	b.WriteString("            <TABLE BORDER=\"0\" CELLBORDER=\"1\" CELLSPACING=\"0\">\n")
	b.WriteString(fmt.Sprintf("                <TR><TD BGCOLOR=\"yellow\" ALIGN=\"center\" COLSPAN=\"3\">%s</TD></TR>\n", esc(t.OutputName())))
	b.WriteString("                <TR><TD COLSPAN=\"3\" HEIGHT=\"1\"></TD></TR>\n")

	for _, c := range t.Columns {
		b.WriteString(fmt.Sprintf("                <TR><TD ALIGN=\"LEFT\" PORT=\"%s\">%s</TD><TD ALIGN=\"LEFT\">%s</TD><TD ALIGN=\"LEFT\">%s</TD></TR>\n",
			esc(c.Name), c.Marker, esc(c.Name), esc(c.Type)))
	}

	if len(t.Uniques) > 0 {
		b.WriteString("                <TR><TD COLSPAN=\"3\" HEIGHT=\"1\"></TD></TR>\n")
		for _, u := range t.Uniques {
			b.WriteString(fmt.Sprintf("                <TR><TD COLSPAN=\"3\">%s</TD></TR>\n", esc(u)))
		}
	}

	if v.ShowConstraints && len(t.Checks) > 0 {
		b.WriteString("                <TR><TD COLSPAN=\"3\" HEIGHT=\"1\"></TD></TR>\n")
		for _, ck := range t.Checks {
			b.WriteString(fmt.Sprintf("                <TR><TD COLSPAN=\"3\">%s</TD></TR>\n", esc(ck.Expression)))
		}
	}

	b.WriteString("            </TABLE>\n")
	b.WriteString("        >\n")
	b.WriteString("    ];\n\n")
}
