package docgen

import (
	"context"
	"strings"
)

// renderExportBody builds the export-mode tabular dump: a header/footer
// shell around one table derived from the configured export columns, with
// the full result set streamed through once. Cell values are inserted raw;
// the template author owns escaping.
func (r *Renderer) renderExportBody(ctx context.Context, doc DocumentConfig, root *scope) (string, error) {
	cfg := *doc.Export
	spec := r.resolveQuerySpec(ctx, cfg.Query, root)
	rows, err := r.Source.Query(ctx, spec)
	if err != nil {
		return "", NewPlaceholderError(KindQuery, doc.Name, "export query failed", err)
	}
	root.setResult(doc.Name, rows)

	var table strings.Builder
	table.WriteString("<table>\n<tr>")
	for _, col := range cfg.Columns {
		label := col.Label
		if label == "" {
			label = col.Name
		}
		table.WriteString("<th>")
		table.WriteString(label)
		table.WriteString("</th>")
	}
	table.WriteString("</tr>\n")
	for _, row := range rows {
		table.WriteString("<tr>")
		for _, col := range cfg.Columns {
			table.WriteString("<td>")
			table.WriteString(stringify(row[col.Name]))
			table.WriteString("</td>")
		}
		table.WriteString("</tr>\n")
	}
	table.WriteString("</table>")

	legend := renderFilterLegend(spec.Filters)

	header := r.renderString(ctx, cfg.Header, root)
	footer := r.renderString(ctx, cfg.Footer, root)

	if cfg.Layout != "" && r.Layout != nil {
		return r.Layout.Execute(cfg.Layout, map[string]any{
			"title":     cfg.Title,
			"header":    header,
			"table":     table.String(),
			"legend":    legend,
			"footer":    footer,
			"row_count": len(rows),
		})
	}

	var body strings.Builder
	body.WriteString(header)
	body.WriteString(table.String())
	body.WriteString(legend)
	body.WriteString(footer)
	return body.String(), nil
}

// renderFilterLegend lists the active filter criteria. The section is
// omitted entirely when no filter carries a value.
func renderFilterLegend(group FilterGroup) string {
	active := activeFilters(group)
	if len(active) == 0 {
		return ""
	}

	var legend strings.Builder
	legend.WriteString("\n<div class=\"filter-legend\"><ul>\n")
	for _, f := range active {
		label := f.Label
		if label == "" {
			label = f.Field
		}
		legend.WriteString("<li>")
		legend.WriteString(label)
		legend.WriteString(": ")
		legend.WriteString(stringify(f.Value))
		legend.WriteString("</li>\n")
	}
	legend.WriteString("</ul></div>")
	return legend.String()
}

func activeFilters(group FilterGroup) []Filter {
	var active []Filter
	for _, f := range group.Filters {
		if strings.TrimSpace(stringify(f.Value)) == "" {
			continue
		}
		active = append(active, f)
	}
	for _, child := range group.Groups {
		active = append(active, activeFilters(child)...)
	}
	return active
}
