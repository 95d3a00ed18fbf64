package renderer

import (
	"regexp"
	"strings"
	"testing"
)

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)

// Drivers strip uniforms a shader never reads, so their locations come back
// as -1 and uploads silently do nothing.
func TestShaderUniformsAreRead(t *testing.T) {
	for name, src := range map[string]string{"points.vs": pointsVS, "points.fs": pointsFS} {
		decls := uniformDecl.FindAllStringSubmatch(src, -1)
		if len(decls) == 0 {
			t.Errorf("%s: expected uniform declarations", name)
		}
		for _, m := range decls {
			body := strings.Replace(src, m[0], "", 1)
			if !regexp.MustCompile(`\b` + m[1] + `\b`).MatchString(body) {
				t.Errorf("%s: uniform %s is declared but never read", name, m[1])
			}
		}
	}
}

func TestShaderDeclaresLookedUpUniforms(t *testing.T) {
	src := pointsVS + pointsFS
	for _, name := range []string{
		"uHandDistance", "uColor", "uNoisePhase", "uPointSize",
		"uParams", "uModel", "uView", "uProjection",
	} {
		if !strings.Contains(src, " "+name+";") {
			t.Errorf("expected a declaration of %s", name)
		}
	}
}
