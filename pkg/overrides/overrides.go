package overrides

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/logging"
	"github.com/arthur-debert/pagesmith/pkg/tree"
)

// Token is one parsed key=value override
type Token struct {
	// Raw is the token as given on the command line
	Raw string
	// Key is the dotted key path with surrounding quotes removed
	Key string
	// Path is Key split on "."
	Path []string
	// Value is the coerced right-hand side
	Value tree.Node
}

// Parse splits a key=value token and coerces its value.
func Parse(raw string) (Token, error) {
	key, value, found := strings.Cut(raw, "=")
	if !found {
		return Token{}, errors.Newf(errors.ErrInvalidOverride, "invalid override %s: missing '='", raw).
			WithDetail("token", raw)
	}

	key = stripQuotes(key)
	if key == "" {
		return Token{}, errors.Newf(errors.ErrInvalidOverride, "invalid override %s: empty key", raw).
			WithDetail("token", raw)
	}

	path := strings.Split(key, ".")
	for _, seg := range path {
		if seg == "" {
			return Token{}, errors.Newf(errors.ErrInvalidOverride, "invalid override %s: empty path segment", raw).
				WithDetail("token", raw)
		}
	}

	return Token{
		Raw:   raw,
		Key:   key,
		Path:  path,
		Value: ParseValue(value),
	}, nil
}

// ParseValue reads s as a JSON literal, falling back to the verbatim string.
func ParseValue(s string) tree.Node {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return &tree.Scalar{Value: s}
	}
	// Trailing content means s was not a single literal ("1 2", "{} x").
	if _, err := dec.Token(); err != io.EOF {
		return &tree.Scalar{Value: s}
	}

	n, err := tree.FromNative(v)
	if err != nil {
		return &tree.Scalar{Value: s}
	}
	return n
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// ApplyAll applies raw override tokens to root in order. The first failing
// token aborts; tokens before it stay applied and the failing token leaves
// the tree untouched.
func ApplyAll(root *tree.Mapping, tokens []string) error {
	logger := logging.GetLogger("overrides")

	for _, raw := range tokens {
		tok, err := Parse(raw)
		if err != nil {
			return err
		}
		if err := Apply(root, tok); err != nil {
			return err
		}
		logger.Debug().
			Str("key", tok.Key).
			RawJSON("value", marshalValue(tok.Value)).
			Msg("applied override")
	}
	return nil
}

// Apply sets tok.Value at tok.Path inside root.
//
// The walk never mutates until every check has passed: the only structure it
// creates is a chain of new mappings below the first absent key, which is
// built detached and attached with a single assignment.
func Apply(root *tree.Mapping, tok Token) error {
	var current tree.Node = root
	last := len(tok.Path) - 1

	for i, seg := range tok.Path[:last] {
		switch node := current.(type) {
		case *tree.Sequence:
			idx, err := sequenceIndex(node, seg, tok)
			if err != nil {
				return err
			}
			current = node.Items[idx]
		case *tree.Mapping:
			next, ok := node.Get(seg)
			if !ok {
				node.Set(seg, vivify(tok.Path[i+1:], tok.Value))
				return nil
			}
			current = next
		default:
			return errors.Newf(errors.ErrOverridePath,
				"override %q: cannot descend into %s at %q",
				tok.Key, current.Kind(), strings.Join(tok.Path[:i+1], ".")).
				WithDetail("token", tok.Raw)
		}
	}

	final := tok.Path[last]
	switch node := current.(type) {
	case *tree.Sequence:
		idx, err := sequenceIndex(node, final, tok)
		if err != nil {
			return err
		}
		node.Items[idx] = tok.Value
	case *tree.Mapping:
		node.Set(final, tok.Value)
	default:
		return errors.Newf(errors.ErrOverridePath,
			"override %q: cannot set %q on a %s",
			tok.Key, final, current.Kind()).
			WithDetail("token", tok.Raw)
	}
	return nil
}

// vivify builds the mapping chain for path with value at its end.
func vivify(path []string, value tree.Node) tree.Node {
	node := value
	for i := len(path) - 1; i >= 0; i-- {
		m := tree.NewMapping()
		m.Set(path[i], node)
		node = m
	}
	return node
}

func sequenceIndex(seq *tree.Sequence, seg string, tok Token) (int, error) {
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 {
		return 0, errors.Newf(errors.ErrInvalidIndex,
			"override %q: %q is not a valid sequence index", tok.Key, seg).
			WithDetail("token", tok.Raw)
	}
	if idx >= seq.Len() {
		return 0, errors.Newf(errors.ErrIndexOutOfBounds,
			"override %q: index %d out of bounds (length %d)", tok.Key, idx, seq.Len()).
			WithDetail("token", tok.Raw).
			WithDetail("index", idx)
	}
	return idx, nil
}

func marshalValue(n tree.Node) []byte {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(n); err != nil {
		return []byte("null")
	}
	return bytes.TrimSpace(buf.Bytes())
}
