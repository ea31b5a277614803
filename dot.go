package automaton

import (
	"fmt"
	"io"
	"strings"
)

// ToDot generates a Graphviz DOT representation of the automaton. States are labelled with their
// index and color, transitions with their symbol and color.
func ToDot(ts Deterministic) string {
	return toDot(ts, func(q int) string {
		return fmt.Sprintf("%d\\n%d", q, ts.StateColor(q))
	})
}

// WriteDot writes the DOT representation of ts to w.
func WriteDot(w io.Writer, ts Deterministic) error {
	_, err := io.WriteString(w, ToDot(ts))
	return err
}

// Dot generates a DOT representation of the explored precise DPA, labelling every state with its
// composite form.
func (x *Exploration) Dot() string {
	return toDot(x.Automaton(), func(q int) string {
		return x.State(q).String()
	})
}

func toDot(ts Deterministic, label func(q int) string) string {
	var sb strings.Builder

	sb.WriteString("digraph Automaton {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	if ts.NumStates() > 0 {
		// Invisible start node pointing to the initial state
		sb.WriteString("  start [shape=point];\n")
		sb.WriteString(fmt.Sprintf("  start -> \"%d\";\n", ts.Initial()))
		sb.WriteString("\n")
	}

	for q := 0; q < ts.NumStates(); q++ {
		sb.WriteString(fmt.Sprintf("  \"%d\" [label=\"%s\"];\n", q, escapeDot(label(q))))
	}
	sb.WriteString("\n")

	alphabet := ts.Alphabet()
	for q := 0; q < ts.NumStates(); q++ {
		for a := 0; a < alphabet.Size(); a++ {
			dest, color, ok := ts.Edge(q, a)
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("  \"%d\" -> \"%d\" [label=\"%s:%d\"];\n",
				q, dest, escapeDot(string(alphabet.Symbol(a))), color))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// escapeDot quotes double quotes; backslash sequences produced by the labels are kept.
func escapeDot(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
