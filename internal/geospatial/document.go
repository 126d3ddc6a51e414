// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package geospatial

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDocument decodes the YAML or JSON document at path into v. A path of
// "-" reads stdin. Unknown keys are rejected so a misspelt field does not
// silently drop part of a request.
func LoadDocument(path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read input document: %w", err)
	}
	return DecodeDocument(data, v)
}

// DecodeDocument is LoadDocument for bytes already in hand.
func DecodeDocument(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to decode input document: %w", err)
	}
	if selectBareKinds(&root) {
		var err error
		if data, err = yaml.Marshal(&root); err != nil {
			return fmt.Errorf("failed to decode input document: %w", err)
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode input document: %w", err)
	}
	return nil
}

// selectBareKinds rewrites a job config member written without a value,
// e.g. "cloudMasking:", to an empty mapping so that it decodes as selected.
func selectBareKinds(n *yaml.Node) (changed bool) {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Value != "jobConfig" || val.Kind != yaml.MappingNode {
				continue
			}
			for j := 1; j < len(val.Content); j += 2 {
				if m := val.Content[j]; m.Kind == yaml.ScalarNode && m.ShortTag() == "!!null" {
					val.Content[j] = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
					changed = true
				}
			}
		}
	}
	for _, c := range n.Content {
		if selectBareKinds(c) {
			changed = true
		}
	}
	return changed
}
