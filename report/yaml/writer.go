package yaml

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/staticbugs/toolwarn/record"
)

// WriteReport write a report in yaml format to the output writer
func WriteReport(w io.Writer, data []record.Record) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, r := range data {
		n, err := recordNode(r.Keys(), r.Values())
		if err != nil {
			return err
		}
		doc.Content = append(doc.Content, n)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// recordNode builds a mapping whose keys keep the canonical order.
func recordNode(keys []string, values []interface{}) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, k := range keys {
		v, err := valueNode(values[i])
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, v)
	}
	return n, nil
}

func valueNode(v interface{}) (*yaml.Node, error) {
	switch t := v.(type) {
	case record.LineSet:
		v = t.Sorted()
	case []record.SpotbugsSrcline:
		lines := make([][]interface{}, len(t))
		for i, l := range t {
			lines[i] = []interface{}{l.Start, l.End, l.Role}
		}
		v = lines
	case []*record.InferBugTrace:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, step := range t {
			n, err := recordNode(record.InferBugTraceKeys, step.Values())
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	}
	n := new(yaml.Node)
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
