package selection

import (
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

var setupGraphemes sync.Once

// graphemeBoundaries returns the byte offsets of all grapheme cluster
// boundaries in text, including 0 and len(text).
func graphemeBoundaries(text string) []int {
	setupGraphemes.Do(func() {
		grapheme.SetupGraphemeClasses()
	})
	onGraphemes := grapheme.NewBreaker(1)
	splitter := segment.NewSegmenter(onGraphemes)
	splitter.Init(strings.NewReader(text))
	bounds := []int{0}
	pos := 0
	for splitter.Next() {
		pos += len(splitter.Bytes())
		bounds = append(bounds, pos)
	}
	if bounds[len(bounds)-1] != len(text) {
		bounds = append(bounds, len(text))
	}
	return bounds
}

// StepGraphemes moves a byte offset within text by n grapheme clusters,
// forward for positive n and backward for negative n. The result is clamped
// to [0, len(text)]. An offset inside a cluster is first snapped to the
// start of that cluster.
func StepGraphemes(text string, offset, n int) int {
	if text == "" {
		return 0
	}
	bounds := graphemeBoundaries(text)
	i := 0
	for i+1 < len(bounds) && bounds[i+1] <= offset {
		i++
	}
	i += n
	if i < 0 {
		i = 0
	} else if i >= len(bounds) {
		i = len(bounds) - 1
	}
	return bounds[i]
}
