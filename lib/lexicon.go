package lib

import "sync"

// lexicon holds the closed keyword and operator tables. It is built once
// and only read afterwards, so one value is shared by every lexer and
// parser.
type lexicon struct {
	keywords  map[string]Keyword
	operators *opTrie
}

var (
	defaultLexiconOnce sync.Once
	defaultLexiconVal  *lexicon
)

func defaultLexicon() *lexicon {
	defaultLexiconOnce.Do(func() {
		defaultLexiconVal = newLexicon()
	})
	return defaultLexiconVal
}

func newLexicon() *lexicon {
	lx := &lexicon{
		keywords:  make(map[string]Keyword, len(keywordNames)),
		operators: newOpTrie(),
	}
	for k, name := range keywordNames {
		lx.keywords[name] = Keyword(k)
	}
	for op, lexeme := range operatorLexemes {
		lx.operators.add(lexeme, Operator(op))
	}
	return lx
}

func (lx *lexicon) keyword(word string) (Keyword, bool) {
	k, ok := lx.keywords[word]
	return k, ok
}

type opTrie struct {
	op       Operator
	terminal bool
	children map[rune]*opTrie
}

func newOpTrie() *opTrie {
	return &opTrie{children: map[rune]*opTrie{}}
}

func (t *opTrie) add(lexeme string, op Operator) {
	node := t
	for _, ch := range lexeme {
		child, ok := node.children[ch]
		if !ok {
			child = newOpTrie()
			node.children[ch] = child
		}
		node = child
	}
	node.op = op
	node.terminal = true
}

func (t *opTrie) startsOperator(ch rune) bool {
	_, ok := t.children[ch]
	return ok
}

// lookup reads the longest operator beginning with first, which has
// already been consumed from chars. Characters read past the last complete
// operator are pushed back.
func (t *opTrie) lookup(first rune, chars *cursor[charInfo]) (Operator, bool) {
	node, ok := t.children[first]
	if !ok {
		return 0, false
	}

	matched, found := node.op, node.terminal
	overrun := []charInfo{}
	for {
		next, _ := chars.Peek()
		child, ok := node.children[next.ch]
		if next.ch == eof || !ok {
			break
		}
		_, _ = chars.Next()
		node = child
		if node.terminal {
			matched, found = node.op, true
			overrun = overrun[:0]
		} else {
			overrun = append(overrun, next)
		}
	}

	for i := len(overrun) - 1; i >= 0; i-- {
		chars.PushBack(overrun[i])
	}
	return matched, found
}
