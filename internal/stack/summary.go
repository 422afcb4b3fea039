package stack

import (
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
)

// Summary counts the resources of a synthesized template.
type Summary struct {
	Total  int
	ByType map[string]int
}

// Summarize counts the resources of a CloudFormation template by type.
func Summarize(template []byte) (*Summary, error) {
	if !gjson.ValidBytes(template) {
		return nil, fmt.Errorf("template is not valid JSON")
	}
	resources := gjson.GetBytes(template, "Resources")
	if !resources.IsObject() {
		return nil, fmt.Errorf("template has no Resources section")
	}

	s := &Summary{ByType: make(map[string]int)}
	var err error
	resources.ForEach(func(logicalID, res gjson.Result) bool {
		typ := res.Get("Type").String()
		if typ == "" {
			err = fmt.Errorf("resource %s has no Type", logicalID.String())
			return false
		}
		s.ByType[typ]++
		s.Total++
		return true
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Types returns the resource types in lexical order.
func (s *Summary) Types() []string {
	types := make([]string, 0, len(s.ByType))
	for typ := range s.ByType {
		types = append(types, typ)
	}
	slices.Sort(types)
	return types
}

// Count returns the number of resources of typ.
func (s *Summary) Count(typ string) int {
	return s.ByType[typ]
}

// PropertiesOf returns the Properties of every resource of typ, in template order.
func PropertiesOf(template []byte, typ string) []gjson.Result {
	var out []gjson.Result
	gjson.GetBytes(template, "Resources").ForEach(func(_, res gjson.Result) bool {
		if res.Get("Type").String() == typ {
			out = append(out, res.Get("Properties"))
		}
		return true
	})
	return out
}
