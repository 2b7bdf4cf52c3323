package ghost

import (
	"fmt"
	"html"
	"strings"

	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"
)

// PlanTitle is the post title for a plan created on the given date.
func PlanTitle(date string) string {
	return "Meal plan for the week of " + date
}

// FormatPlanHTML renders a week plan and its shopping list as post HTML.
func FormatPlanHTML(plan planner.WeekPlan, summary shopping.Summary) string {
	var sb strings.Builder

	sb.WriteString("<h2>Plan</h2><ul>")
	for _, day := range planner.Week {
		dp, ok := plan[day]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "<li><strong>%s:</strong> %s", day, html.EscapeString(dp.Description))
		if main := dp.Main(); main != nil && main.RecipeLink != nil {
			fmt.Fprintf(&sb, ` (<a href="%s">recipe</a>)`, html.EscapeString(*main.RecipeLink))
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h2>Shopping list</h2><ul>")
	for _, item := range summary.Items() {
		fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(item.String()))
	}
	sb.WriteString("</ul>")

	if len(summary.Warnings) > 0 {
		sb.WriteString("<hr><p><i>Check these by hand:</i></p><ul>")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(w.String()))
		}
		sb.WriteString("</ul>")
	}

	return sb.String()
}
