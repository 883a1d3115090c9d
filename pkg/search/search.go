package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// 与 MySQL/Mongo 全文索引类似，忽略常见停用词
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {},
	"the": {}, "to": {}, "with": {},
}

// Normalize NFKC 规范化后做大小写折叠，使全角/半角、大小写形式一致
func Normalize(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

func Tokenize(s string) []string {
	fields := strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if _, ok := stopWords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

type Field struct {
	Text   string
	Weight float64
}

type Document struct {
	ID     int64
	Fields []Field
}

type Hit struct {
	ID    int64
	Score float64
}

// Score 每个命中的字段贡献 weight*(0.5 + 0.5*词频/字段词数)，未命中任何查询词时为 0
func Score(terms []string, doc Document) float64 {
	var score float64
	for _, f := range doc.Fields {
		tokens := Tokenize(f.Text)
		if len(tokens) == 0 {
			continue
		}
		counts := make(map[string]int, len(tokens))
		for _, t := range tokens {
			counts[t]++
		}
		for _, term := range terms {
			if freq := counts[term]; freq > 0 {
				score += f.Weight * (0.5 + 0.5*float64(freq)/float64(len(tokens)))
			}
		}
	}
	return score
}

// Rank 返回与查询相关的文档，按分数降序，分数相同按 ID 降序
func Rank(query string, docs []Document) []Hit {
	terms := uniqueTerms(query)
	if len(terms) == 0 {
		return []Hit{}
	}
	hits := make([]Hit, 0, len(docs))
	for _, d := range docs {
		if s := Score(terms, d); s > 0 {
			hits = append(hits, Hit{ID: d.ID, Score: s})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID > hits[j].ID
	})
	return hits
}

func uniqueTerms(query string) []string {
	seen := make(map[string]struct{})
	terms := make([]string, 0)
	for _, t := range Tokenize(query) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}
