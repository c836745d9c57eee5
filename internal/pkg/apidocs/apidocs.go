// Package apidocs loads the published OpenAPI document and checks it against
// the routes the server actually registers.
package apidocs

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// DocumentPath is the document location relative to the project root.
const DocumentPath = "public/docs/v1/openapi.yml"

// Load reads and validates the OpenAPI document at path.
func Load(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load openapi document %s: %w", path, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document %s: %w", path, err)
	}
	return doc, nil
}

// Locate returns the first base path under which the document exists.
func Locate(basePaths ...string) (string, bool) {
	for _, base := range basePaths {
		candidate := base + DocumentPath
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// Operations lists every documented operation as "METHOD /prefix/path", with
// path templates written the Fiber way (":id" instead of "{id}"). The first
// server URL is used as prefix.
func Operations(doc *openapi3.T) []string {
	prefix := ""
	if len(doc.Servers) > 0 {
		prefix = strings.TrimSuffix(doc.Servers[0].URL, "/")
	}

	var ops []string
	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			ops = append(ops, strings.ToUpper(method)+" "+prefix+fiberPath(path))
		}
	}
	sort.Strings(ops)
	return ops
}

func fiberPath(path string) string {
	var b strings.Builder
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		b.WriteByte('/')
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			b.WriteByte(':')
			b.WriteString(strings.TrimSuffix(strings.TrimPrefix(segment, "{"), "}"))
			continue
		}
		b.WriteString(segment)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
