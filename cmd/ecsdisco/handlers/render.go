package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/ecsdisco/internal/stack"
	"github.com/imamik/ecsdisco/internal/topology"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorAmber = lipgloss.Color("#f59e0b")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	addedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	removedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	updatedStyle = lipgloss.NewStyle().
			Foreground(colorAmber)
)

// renderPlan produces a lipgloss-styled table of the plan's declarations.
func renderPlan(plan *topology.Plan) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  ecsdisco plan: %s", plan.StackName)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Declarations"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 76)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-34s %-18s %s", "ID", "Kind", "Depends on")))
	b.WriteString("\n")

	for _, d := range plan.Graph.Declarations() {
		fmt.Fprintf(&b, "  %-34s %-18s %s\n", d.ID, d.Kind, strings.Join(d.DependsOn, ", "))
	}

	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 76)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Summary"))
	b.WriteString("\n")
	subnets := 0
	for _, p := range plan.Partitions {
		subnets += len(p.Subnets)
		fmt.Fprintf(&b, "    %-12s %s %s, %d zones, %d subnets\n",
			p.Role+":", p.ID, p.CIDR, p.Zones, len(p.Subnets))
	}
	if svc := plan.Service; svc != nil && svc.Registration != nil {
		fmt.Fprintf(&b, "    %-12s %s x%d, %s record, TTL %s\n",
			"service:", svc.ID, svc.DesiredCount, svc.Registration.RecordType, svc.Registration.TTL)
	}
	if plan.ZoneAssociation != nil {
		fmt.Fprintf(&b, "    %-12s %s -> %s\n", "association:", plan.Namespace.Name, plan.ZoneAssociation.PartitionID)
	}
	fmt.Fprintf(&b, "    %-12s %d declarations, %d subnets\n", "total:", plan.Graph.Len(), subnets)

	return b.String()
}

// renderChanges produces a styled list of manifest changes.
func renderChanges(changes []topology.Change) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Changes"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")

	if len(changes) == 0 {
		b.WriteString(dimStyle.Render("  No changes."))
		b.WriteString("\n")
		return b.String()
	}

	for _, c := range changes {
		line := fmt.Sprintf("  %s %-34s %s", changeSymbol(c.Type), c.ID, c.Kind)
		switch c.Type {
		case topology.ChangeAdded:
			b.WriteString(addedStyle.Render(line))
		case topology.ChangeRemoved:
			b.WriteString(removedStyle.Render(line))
		default:
			b.WriteString(updatedStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func changeSymbol(t topology.ChangeType) string {
	switch t {
	case topology.ChangeAdded:
		return "+"
	case topology.ChangeRemoved:
		return "-"
	default:
		return "~"
	}
}

// renderSummary produces a styled table of synthesized resource counts.
func renderSummary(stackName string, summary *stack.Summary) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  ecsdisco synth: %s", stackName)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")

	for _, typ := range summary.Types() {
		fmt.Fprintf(&b, "  %-44s %4d\n", typ, summary.Count(typ))
	}

	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-44s %4d\n", "Total", summary.Total)
	return b.String()
}
