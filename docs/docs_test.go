package docs

import (
	"bufio"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routerAnnotations collects "path method" pairs from @Router comments.
func routerAnnotations(t *testing.T, root string) []string {
	t.Helper()
	var routes []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		for sc.Scan() {
			fields := strings.Fields(sc.Text())
			if len(fields) == 4 && fields[0] == "//" && fields[1] == "@Router" {
				routes = append(routes, fields[2]+" "+strings.Trim(fields[3], "[]"))
			}
		}
		return sc.Err()
	})
	require.NoError(t, err)
	return routes
}

func TestDocCoversEveryAnnotatedRoute(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	routes := routerAnnotations(t, filepath.Join("..", "internal"))
	require.NotEmpty(t, routes)
	for _, r := range routes {
		path, method, _ := strings.Cut(r, " ")
		_, ok := doc.Paths[path][method]
		assert.True(t, ok, "missing %s", r)
	}
}
