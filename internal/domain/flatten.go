package domain

import m "github.com/mouse-blink/splint/internal/model"

// Flatten turns token trees into a linear token sequence in pre-order: a group
// contributes its open delimiter, its contents and then its close delimiter.
func Flatten(trees []m.TokenTree) []m.Token {
	out := make([]m.Token, 0, countTokens(trees))

	return appendFlat(out, trees)
}

func appendFlat(out []m.Token, trees []m.TokenTree) []m.Token {
	for _, tree := range trees {
		if !tree.Group {
			out = append(out, tree.Token)
			continue
		}

		out = append(out, tree.Open)
		out = appendFlat(out, tree.Children)
		out = append(out, tree.Close)
	}

	return out
}

func countTokens(trees []m.TokenTree) int {
	n := 0

	for _, tree := range trees {
		if tree.Group {
			n += 2 + countTokens(tree.Children)
		} else {
			n++
		}
	}

	return n
}
