package pysrc

import "testing"

func TestNormalizeIndentation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "two space unit rescaled",
			src:  "def f():\n  if x:\n    return 1\n",
			want: "def f():\n    if x:\n        return 1\n",
		},
		{
			name: "tabs become levels",
			src:  "def f():\n\treturn 1\n",
			want: "def f():\n    return 1\n",
		},
		{
			name: "four space unit unchanged",
			src:  "def f():\n    return 1\n",
			want: "def f():\n    return 1\n",
		},
		{
			name: "trailing whitespace stripped",
			src:  "x = 1   \n",
			want: "x = 1\n",
		},
		{
			name: "blank lines emptied",
			src:  "x = 1\n   \ny = 2\n",
			want: "x = 1\n\ny = 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIndentation(tt.src); got != tt.want {
				t.Errorf("NormalizeIndentation(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestNormalizeThenParse(t *testing.T) {
	src := "def f(x):\n\tif x:\n\t\treturn x\n\treturn 0\n"
	mod, err := Parse(NormalizeIndentation(src))
	if err != nil {
		t.Fatalf("Parse after normalization failed: %v", err)
	}
	fn := mod.Body[0].(*FunctionDef)
	if len(fn.Body) != 2 {
		t.Errorf("function body has %d statements, want 2", len(fn.Body))
	}
}
