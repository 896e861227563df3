package emit

import (
	"fmt"

	"github.com/projectdiscovery/fasttemplate"
)

const (
	parenOpen  = "{{"
	parenClose = "}}"
)

// renderLine executes a `{{field}}`-templated line against values.
func renderLine(template string, values map[string]interface{}) string {
	valuesMap := make(map[string]interface{}, len(values))
	for k, v := range values {
		valuesMap[k] = fmt.Sprint(v)
	}
	return fasttemplate.ExecuteStringStd(template, parenOpen, parenClose, valuesMap)
}
