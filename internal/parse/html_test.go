package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLToText(t *testing.T) {
	page := `<html><head><style>p { color: red; }</style></head><body>
<p>Good morning!</p>
<p>This problem was asked by Acme.</p><p>Merge two sorted lists.</p>
<hr>
<p>Upgrade to premium</p>
<script>track();</script>
</body></html>`

	text, err := HTMLToText(strings.NewReader(page))
	require.NoError(t, err)

	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "track()")

	statement, err := ExtractBody(text)
	require.NoError(t, err)
	assert.Equal(t, "This problem was asked by Acme.\nMerge two sorted lists.", statement)
}
