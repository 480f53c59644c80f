// Package template provides a Handlebars template engine for rendering
// evaluation summaries.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	data := map[string]interface{}{
//	    "expression": "(10 * 9) + ((3 - 4) * 5)",
//	    "value":      "85",
//	}
//
//	result, err := engine.Render(template.DefaultSummary, data)
//	// result == "(10 * 9) + ((3 - 4) * 5) = 85"
//
// Built-in helpers:
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - trim - Trim whitespace from string
//   - default - Return default value if first arg is empty
//   - eq - Equality comparison
//   - ne - Inequality comparison
package template
