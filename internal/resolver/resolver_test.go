package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/glsipy/internal/pragma"
	"github.com/vk/glsipy/internal/testutil"
)

const entry = "shaders/main.frag"

// newTestResolver lays out files under a fresh root and returns a resolver
// working from that root together with its file system spy.
func newTestResolver(t *testing.T, files map[string]string) (*Resolver, *testutil.CountingFS, string) {
	t.Helper()
	root := testutil.WriteTree(t, files)
	fsys := testutil.NewCountingFS(nil)
	r := New([]string{"./others"}, WithFS(fsys), WithWorkDir(root))
	return r, fsys, root
}

func expandLines(t *testing.T, r *Resolver) []string {
	t.Helper()
	res, err := r.Expand(context.Background(), entry)
	require.NoError(t, err)
	return res.Lines
}

func TestCompile_InlinesRequiredModule(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r, _, root := newTestResolver(t, map[string]string{
		entry: "#version 300 es\n" +
			"#pragma glsipy: noise = require('noise.glsl')\n" +
			"void main() {}\n",
		"others/noise.glsl": "float noise(vec2 p) { return 0.0; }\n" +
			"#pragma glsipy: export(noise)\n",
	})

	// --- Act ---
	out, err := r.Compile(context.Background(), entry, "main.out.frag", false)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "shaders", "main.out.frag"), out)
	assert.Equal(t,
		"#version 300 es\nfloat noise(vec2 p) { return 0.0; }\nvoid main() {}\n",
		testutil.ReadFile(t, root, "shaders/main.out.frag"))
}

func TestCompile_Minified(t *testing.T) {
	t.Parallel()

	r, _, root := newTestResolver(t, map[string]string{
		entry: "#version 300 es\nvoid main(){\n\tgl_Position=x;\n}\n",
	})

	_, err := r.Compile(context.Background(), entry, "min.frag", true)

	require.NoError(t, err)
	assert.Equal(t, "#version 300 es\nvoid main(){ gl_Position=x;}", testutil.ReadFile(t, root, "shaders/min.frag"))
}

func TestCompile_OverwritesExistingOutput(t *testing.T) {
	t.Parallel()

	r, _, root := newTestResolver(t, map[string]string{
		entry:              "void main() {}\n",
		"shaders/out.frag": "stale content that is much longer than the new one\n",
	})

	_, err := r.Compile(context.Background(), entry, "out.frag", false)

	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", testutil.ReadFile(t, root, "shaders/out.frag"))
}

func TestExpand_CachedModuleIsReadOnce(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Two different modules require the same exported module.
	r, fsys, root := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: a = require('a.glsl')\n" +
			"#pragma glsipy: b = require('b.glsl')\n",
		"others/a.glsl": "// a\n" +
			"#pragma glsipy: common = require('others/common.glsl')\n" +
			"#pragma glsipy: export(a)\n",
		"others/b.glsl": "// b\n" +
			"#pragma glsipy: common = require('others/common.glsl')\n" +
			"#pragma glsipy: export(b)\n",
		"others/common.glsl": "const float PI = 3.14159;\n" +
			"#pragma glsipy: export(common)\n",
	})

	// --- Act ---
	lines := expandLines(t, r)

	// --- Assert ---
	want := []string{
		"// a\n", "const float PI = 3.14159;\n",
		"// b\n", "const float PI = 3.14159;\n",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("expanded lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, fsys.Opens(filepath.Join(root, "others", "common.glsl")))
	assert.Equal(t, 3, r.Store().Len())
}

func TestExpand_TerminalExportMustBeLastLine(t *testing.T) {
	t.Parallel()

	r, fsys, root := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: a = require('a.glsl')\n" +
			"#pragma glsipy: b = require('b.glsl')\n",
		"others/a.glsl": "#pragma glsipy: common = require('others/common.glsl')\n",
		"others/b.glsl": "#pragma glsipy: common = require('others/common.glsl')\n",
		"others/common.glsl": "const float PI = 3.14159;\n" +
			"#pragma glsipy: export(common)\n" +
			"// trailing comment\n",
	})

	lines := expandLines(t, r)

	want := []string{
		"const float PI = 3.14159;\n", "// trailing comment\n",
		"const float PI = 3.14159;\n", "// trailing comment\n",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("expanded lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, fsys.Opens(filepath.Join(root, "others", "common.glsl")))
	_, cached := r.Store().Get(context.Background(), "common")
	assert.False(t, cached)
}

func TestExpand_TerminalExportWithoutNewline(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, map[string]string{
		entry:               "#pragma glsipy: fog = require('fog.glsl')\n",
		"partials/fog.glsl": "float fog;\n#pragma glsipy: export('fog')",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{"float fog;\n"}, lines)
	_, cached := r.Store().Get(context.Background(), "fog")
	assert.True(t, cached)
}

func TestExpand_SubstitutionIsScopedToModule(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, map[string]string{
		entry: "a\n" +
			"#pragma glsipy: m = require('m.glsl', a=A)\n" +
			"a\n",
		"others/m.glsl": "a\n#pragma export(x)\nb\n",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{"a\n", "A\n", "b\n", "a\n"}, lines)
}

func TestExpand_SubstitutionReachesNestedContent(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: light = require('light.glsl', COLOR=red, N = 4)\n",
		"others/light.glsl": "#pragma glsipy: shade = require('others/shade.glsl')\n" +
			"const int count = N;\n" +
			"#pragma export(light)\n",
		"others/shade.glsl": "float shade(int n) { return float(N); }\n",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{
		"float shade(int n) { return float(4); }\n",
		"const int count = 4;\n",
	}, lines)
}

func TestExpand_CachedModuleIgnoresNewSubstitutions(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: tint = require('tint.glsl', VALUE=1.0)\n" +
			"#pragma glsipy: tint = require('tint.glsl', VALUE=2.0)\n",
		"others/tint.glsl": "float tint = VALUE;\n" +
			"#pragma export(tint)\n" +
			"#pragma glsipy: export(tint)\n",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{"float tint = 1.0;\n", "float tint = 1.0;\n"}, lines)
}

func TestExpand_CacheLookupUsesAlias(t *testing.T) {
	t.Parallel()

	r, fsys, root := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: first = require('m.glsl')\n" +
			"#pragma glsipy: second = require('m.glsl', X=1)\n",
		"others/m.glsl": "m\n#pragma glsipy: export(module)\n",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{"m\n", "m\n"}, lines)
	assert.Equal(t, 2, fsys.Opens(filepath.Join(root, "others", "m.glsl")))
}

func TestExpand_DuplicateRootRequireIsDropped(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: foo = require('foo.glsl')\n" +
			"mid\n" +
			"#pragma glsipy: foo = require('foo.glsl')\n",
		"others/foo.glsl": "foo\n",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{"foo\n", "mid\n"}, lines)
}

func TestExpand_NestedRequiresAreNotDeduplicated(t *testing.T) {
	t.Parallel()

	r, fsys, root := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: a = require('a.glsl')\n" +
			"#pragma glsipy: b = require('b.glsl')\n",
		"others/a.glsl":   "#pragma glsipy: foo = require('others/foo.glsl')\n",
		"others/b.glsl":   "#pragma glsipy: foo = require('others/foo.glsl')\n",
		"others/foo.glsl": "foo\n",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{"foo\n", "foo\n"}, lines)
	assert.Equal(t, 2, fsys.Opens(filepath.Join(root, "others", "foo.glsl")))
}

func TestExpand_SearchDirectoryOrder(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: x = require('x.glsl')\n" +
			"#pragma glsipy: y = require(\"y.glsl\")\n",
		"others/x.glsl":   "others x\n",
		"partials/x.glsl": "partials x\n",
		"partials/y.glsl": "partials y\n",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{"others x\n", "partials y\n"}, lines)
	assert.Equal(t, []string{"./others", "./partials"}, r.SearchDirs())
}

func TestExpand_AbsoluteEntry(t *testing.T) {
	t.Parallel()

	r, _, root := newTestResolver(t, map[string]string{
		entry: "void main() {}\n",
	})

	res, err := r.Expand(context.Background(), filepath.Join(root, "shaders", "main.frag"))

	require.NoError(t, err)
	assert.Equal(t, []string{"void main() {}\n"}, res.Lines)
	assert.Equal(t, filepath.Join(root, "shaders"), res.BaseDir)
}

func TestExpand_PlainPragmasPassThrough(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, map[string]string{
		entry: "#pragma optimize(on)\n" +
			"#pragma glsipy: unknown directive\n" +
			"#pragma glsipy: export(main)\n",
	})

	lines := expandLines(t, r)

	assert.Equal(t, []string{"#pragma optimize(on)\n", "#pragma glsipy: unknown directive\n"}, lines)
	assert.Zero(t, r.Store().Len())
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name: "unresolvable module",
			files: map[string]string{
				entry: "#pragma glsipy: ghost = require('ghost.glsl')\n",
			},
			wantErr: ErrShaderUndefined,
		},
		{
			name:    "missing entry",
			files:   map[string]string{"shaders/other.frag": ""},
			wantErr: ErrMissingFile,
		},
		{
			name: "missing nested module",
			files: map[string]string{
				entry:           "#pragma glsipy: a = require('a.glsl')\n",
				"others/a.glsl": "#pragma glsipy: b = require('others/b.glsl')\n",
			},
			wantErr: ErrMissingFile,
		},
		{
			name: "malformed substitution",
			files: map[string]string{
				entry:           "#pragma glsipy: a = require('a.glsl', COLOR)\n",
				"others/a.glsl": "a\n",
			},
			wantErr: pragma.ErrMalformedSubstitution,
		},
		{
			name: "cyclic require",
			files: map[string]string{
				entry:           "#pragma glsipy: a = require('a.glsl')\n",
				"others/a.glsl": "#pragma glsipy: b = require('others/b.glsl')\n#pragma glsipy: export(a)\n",
				"others/b.glsl": "#pragma glsipy: a = require('others/a.glsl')\n#pragma glsipy: export(b)\n",
			},
			wantErr: ErrCyclicRequire,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			r, fsys, root := newTestResolver(t, tc.files)

			// --- Act ---
			_, err := r.Compile(context.Background(), entry, "out.frag", false)

			// --- Assert ---
			require.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, fsys.Writes(), "nothing should be written on failure")
			_, statErr := os.Stat(filepath.Join(root, "shaders", "out.frag"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestExpand_CacheSurvivesFailedRun(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestResolver(t, map[string]string{
		entry: "#pragma glsipy: ok = require('ok.glsl')\n" +
			"#pragma glsipy: ghost = require('ghost.glsl')\n",
		"others/ok.glsl": "ok\n#pragma glsipy: export(ok)\n",
	})

	_, err := r.Expand(context.Background(), entry)

	require.ErrorIs(t, err, ErrShaderUndefined)
	_, cached := r.Store().Get(context.Background(), "ok")
	assert.True(t, cached)
}
