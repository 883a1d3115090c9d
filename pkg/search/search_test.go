package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	require.Equal(t, []string{"golang", "tutorial", "2024"}, Tokenize("The GoLang   tutorial, 2024!"))
	// 全角字符经 NFKC 规范化后与半角一致
	require.Equal(t, []string{"go"}, Tokenize("Ｇｏ"))
	require.Empty(t, Tokenize("  the of and "))
}

func docs() []Document {
	return []Document{
		{ID: 1, Fields: []Field{{Text: "Cooking pasta", Weight: 1}, {Text: "an easy dinner", Weight: 1}}},
		{ID: 2, Fields: []Field{{Text: "Go concurrency", Weight: 1}, {Text: "channels and goroutines in go", Weight: 1}}},
		{ID: 3, Fields: []Field{{Text: "Learn Go", Weight: 1}, {Text: "a first look", Weight: 1}}},
		{ID: 4, Fields: []Field{{Text: "Gardening", Weight: 1}, {Text: "", Weight: 1}}},
	}
}

func TestRank(t *testing.T) {
	hits := Rank("go", docs())
	require.Len(t, hits, 2)
	// 标题和描述都命中的文档排在前面
	require.Equal(t, int64(2), hits[0].ID)
	require.Equal(t, int64(3), hits[1].ID)
	require.Greater(t, hits[0].Score, hits[1].Score)

	require.Empty(t, Rank("the", docs()))
	require.Empty(t, Rank("quantum", docs()))
}

func TestRankTieBreaksByID(t *testing.T) {
	d := []Document{
		{ID: 10, Fields: []Field{{Text: "music video", Weight: 1}}},
		{ID: 30, Fields: []Field{{Text: "music video", Weight: 1}}},
		{ID: 20, Fields: []Field{{Text: "music video", Weight: 1}}},
	}
	hits := Rank("music", d)
	require.Equal(t, []int64{30, 20, 10}, []int64{hits[0].ID, hits[1].ID, hits[2].ID})
}
