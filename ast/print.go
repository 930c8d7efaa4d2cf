package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

func dumpf(w io.Writer, indentLevel int, typ string, properties ...string) error {
	indent := strings.Repeat("    ", indentLevel)
	if _, err := fmt.Fprintf(w, "%s- *%s*\n", indent, typ); err != nil {
		return err
	}
	for i := 0; i < len(properties); i += 2 {
		key, value := properties[i], ""
		if i+1 < len(properties) {
			value = properties[i+1]
		}
		value = strconv.Quote(value)
		value = value[1 : len(value)-1]
		if _, err := fmt.Fprintf(w, "%s    - %s: `%s`\n", indent, key, value); err != nil {
			return err
		}
	}
	return nil
}

func dump(w io.Writer, indentLevel int, n Node) error {
	properties := []string{"Position", n.Token.Position.String()}
	if n.IsQuoted {
		properties = append(properties, "Quoted", "true")
	}
	if n.IsLeaf() {
		properties = append(properties, "Value", n.Token.Value)
	}
	if err := dumpf(w, indentLevel, string(n.Token.Type), properties...); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := dump(w, indentLevel+1, c); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes a human-readable, indented Markdown-list rendering of n to w:
// one bullet per node, nested by child depth, annotating quoted subtrees
// and leaf values. Intended for debugging a parse, not for serialization.
func Dump(w io.Writer, n Node) error {
	return dump(w, 0, n)
}
