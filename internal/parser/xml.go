package parser

import (
	"encoding/xml"
	"html"
	"io"
	"os"
	"strings"
)

// xmlNode is a namespace-agnostic element tree. XLIFF dialects disagree on
// namespaces, so all lookups use local names only, mirroring the
// local-name() matching the formats require.
type xmlNode struct {
	name     string
	attrs    map[string]string
	children []*xmlNode
	text     string
}

func parseXMLFile(path string) (*xmlNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseXML(f)
}

func parseXML(r io.Reader) (*xmlNode, error) {
	dec := xml.NewDecoder(r)
	var root *xmlNode
	var stack []*xmlNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, attr := range t.Attr {
				node.attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errMultipleRoots
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errEmptyDocument
	}
	return root, nil
}

var (
	errMultipleRoots = xmlError("multiple root elements")
	errEmptyDocument = xmlError("no root element")
)

type xmlError string

func (e xmlError) Error() string { return string(e) }

func (n *xmlNode) attr(name string) string { return n.attrs[name] }

// findAll collects descendants with the given local name, document order.
func (n *xmlNode) findAll(name string) []*xmlNode {
	var found []*xmlNode
	for _, child := range n.children {
		if child.name == name {
			found = append(found, child)
		}
		found = append(found, child.findAll(name)...)
	}
	return found
}

// find returns the first descendant with the given local name, or nil.
func (n *xmlNode) find(name string) *xmlNode {
	for _, child := range n.children {
		if child.name == name {
			return child
		}
		if inner := child.find(name); inner != nil {
			return inner
		}
	}
	return nil
}

// innerText concatenates the node's own character data with all
// descendants', document order.
func (n *xmlNode) innerText() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *xmlNode) writeText(sb *strings.Builder) {
	sb.WriteString(n.text)
	for _, child := range n.children {
		child.writeText(sb)
	}
}

// firstChildText returns the inner text of the first descendant with the
// given name, and whether such a descendant exists.
func (n *xmlNode) firstChildText(name string) (string, bool) {
	node := n.find(name)
	if node == nil {
		return "", false
	}
	return node.innerText(), true
}

// decodeHTMLEntities unescapes HTML entities, repeating for double-encoded
// input. Capped at a few rounds so degenerate input cannot loop.
func decodeHTMLEntities(value string) string {
	const maxRounds = 4
	current := value
	for i := 0; i < maxRounds; i++ {
		decoded := html.UnescapeString(current)
		if decoded == current {
			break
		}
		current = decoded
	}
	return current
}
