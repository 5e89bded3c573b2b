package huffman

import "testing"

func TestCodes(t *testing.T) {
	tests := []struct {
		name  string
		freqs Table
		want  map[byte]string
	}{
		{
			name:  "nil tree",
			freqs: Table{},
			want:  map[byte]string{},
		},
		{
			name:  "single leaf gets code 0",
			freqs: Table{'A': 5},
			want:  map[byte]string{'A': "0"},
		},
		{
			name:  "two leaves",
			freqs: Table{'a': 1, 'b': 2},
			want:  map[byte]string{'a': "0", 'b': "1"},
		},
		{
			name:  "tie break shape",
			freqs: Table{'A': 1, 'B': 1, 'C': 2},
			want:  map[byte]string{'C': "0", 'A': "10", 'B': "11"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Codes(Build(tt.freqs))
			if len(got) != len(tt.want) {
				t.Fatalf("Codes() has %d entries, want %d", len(got), len(tt.want))
			}
			for sym, code := range tt.want {
				if got[sym] != code {
					t.Errorf("code(%q) = %q, want %q", sym, got[sym], code)
				}
			}
		})
	}
}

// TestCodesPrefixFree checks the defining property of Huffman codes: no
// code is a prefix of another.
func TestCodesPrefixFree(t *testing.T) {
	freqs := Table{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45}
	codes := Codes(Build(freqs))
	if len(codes) != 6 {
		t.Fatalf("Codes() has %d entries, want 6", len(codes))
	}
	for s1, c1 := range codes {
		for s2, c2 := range codes {
			if s1 == s2 {
				continue
			}
			if len(c1) <= len(c2) && c2[:len(c1)] == c1 {
				t.Errorf("code(%q)=%q is a prefix of code(%q)=%q", s1, c1, s2, c2)
			}
		}
	}
}

// TestCodeLengthsMatchDepth checks that each leaf's code length equals its
// depth, which is what makes the tree drawing a faithful picture of the
// coding.
func TestCodeLengthsMatchDepth(t *testing.T) {
	freqs := Table{'a': 1, 'b': 1, 'c': 2, 'd': 4, 'e': 8}
	root := Build(freqs)
	codes := Codes(root)

	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n.IsLeaf() {
			if len(codes[n.Symbol]) != depth {
				t.Errorf("len(code(%q)) = %d, want depth %d", n.Symbol, len(codes[n.Symbol]), depth)
			}
			return
		}
		walk(n.Left, depth+1)
		walk(n.Right, depth+1)
	}
	walk(root, 0)
}
