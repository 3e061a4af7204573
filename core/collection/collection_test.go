package collection

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id    string
	value int
}

func newList() *List[row] {
	return New(func(r row) string { return r.id })
}

var errRejected = errors.New("rejected")

func reject() error { return errRejected }

func TestList(t *testing.T) {
	l := newList()
	require.NoError(t, l.Replace(nil, []row{{"a", 1}, {"b", 2}}))
	require.NoError(t, l.Append(nil, row{"c", 3}))
	assert.Equal(t, 3, l.Len())
	require.NoError(t, l.Append(nil, row{"a", 10}))
	assert.Equal(t, []row{{"a", 10}, {"b", 2}, {"c", 3}}, l.Items(), "known keys are replaced in place")

	got, err := l.Patch(nil, "b", func(r *row) { r.value = 20 })
	require.NoError(t, err)
	assert.Equal(t, row{"b", 20}, got)

	_, err = l.Patch(nil, "zzz", func(r *row) { r.value = 0 })
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, l.Remove(nil, "a"))
	require.NoError(t, l.Remove(nil, "a"))
	assert.Equal(t, []row{{"b", 20}, {"c", 3}}, l.Items())

	r, ok := l.Find("c")
	assert.True(t, ok)
	assert.Equal(t, 3, r.value)
	_, ok = l.Find("a")
	assert.False(t, ok)
}

func TestList_rejectedChecksLeaveItemsAlone(t *testing.T) {
	l := newList()
	require.NoError(t, l.Replace(nil, []row{{"a", 1}}))

	assert.Equal(t, errRejected, l.Replace(reject, nil))
	assert.Equal(t, errRejected, l.Append(reject, row{"b", 2}))
	_, err := l.Patch(reject, "a", func(r *row) { r.value = 100 })
	assert.Equal(t, errRejected, err)
	assert.Equal(t, errRejected, l.Remove(reject, "a"))

	assert.Equal(t, []row{{"a", 1}}, l.Items())
}

func TestList_ItemsIsACopy(t *testing.T) {
	l := newList()
	src := []row{{"a", 1}}
	require.NoError(t, l.Replace(nil, src))
	src[0].value = 99

	items := l.Items()
	items[0].value = 42
	assert.Equal(t, 1, l.Items()[0].value)
}

func TestList_ReplaceAt(t *testing.T) {
	l := newList()
	v := l.Version()

	require.NoError(t, l.ReplaceAt(nil, v, []row{{"a", 1}}))
	assert.NotEqual(t, v, l.Version())

	tests := []struct {
		name   string
		mutate func(l *List[row]) error
		moves  bool
	}{
		{name: "append", mutate: func(l *List[row]) error { return l.Append(nil, row{"b", 2}) }, moves: true},
		{name: "patch", mutate: func(l *List[row]) error { _, err := l.Patch(nil, "a", func(r *row) { r.value++ }); return err }, moves: true},
		{name: "remove", mutate: func(l *List[row]) error { return l.Remove(nil, "a") }, moves: true},
		{name: "remove unknown", mutate: func(l *List[row]) error { return l.Remove(nil, "zzz") }},
		{name: "rejected append", mutate: func(l *List[row]) error { _ = l.Append(reject, row{"b", 2}); return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList()
			require.NoError(t, l.Replace(nil, []row{{"a", 1}}))
			v := l.Version()

			require.NoError(t, tt.mutate(l))
			err := l.ReplaceAt(nil, v, []row{{"x", 0}})
			if tt.moves {
				assert.Equal(t, ErrModified, err)
				assert.NotEqual(t, []row{{"x", 0}}, l.Items())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []row{{"x", 0}}, l.Items())
		})
	}

	assert.Equal(t, errRejected, l.ReplaceAt(reject, l.Version(), nil))
	assert.Len(t, l.Items(), 1)
}
