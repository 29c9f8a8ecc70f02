package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/process-hub/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"SEO":                     "seo",
		"Búsqueda Orgánica":       "busqueda-organica",
		"  Social  Media -- Ads ": "social-media-ads",
		"Acme Corp.":              "acme-corp",
		"!!!":                     "",
		"Año 2026":                "ano-2026",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), in)
	}
}
