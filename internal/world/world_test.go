package world

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type field struct {
	name string
	set  func(w *World, v string)
	get  func(w *World) (string, bool)
}

var fields = []field{
	{"url", (*World).SetURL, (*World).URL},
	{"firstName", (*World).SetFirstName, (*World).FirstName},
	{"lastName", (*World).SetLastName, (*World).LastName},
	{"emailAddress", (*World).SetEmailAddress, (*World).EmailAddress},
}

func TestFreshWorldHasEveryFieldAbsent(t *testing.T) {
	w := New(Options{})
	for _, f := range fields {
		v, ok := f.get(w)
		assert.False(t, ok, f.name)
		assert.Empty(t, v, f.name)
	}
}

func TestFields(t *testing.T) {
	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			w := New(Options{})

			f.set(w, "A")
			v, ok := f.get(w)
			require.True(t, ok)
			assert.Equal(t, "A", v)

			// Overwrite keeps no history.
			f.set(w, "B")
			v, ok = f.get(w)
			require.True(t, ok)
			assert.Equal(t, "B", v)

			// Reading twice does not regenerate anything.
			again, _ := f.get(w)
			assert.Equal(t, v, again)

			f.set(w, "")
			_, ok = f.get(w)
			assert.False(t, ok, "an empty value marks the field absent")
		})
	}
}

func TestFieldsAreIndependent(t *testing.T) {
	w := New(Options{})
	w.SetFirstName("Joe")
	w.SetLastName("Blogs")

	first, ok := w.FirstName()
	require.True(t, ok)
	assert.Equal(t, "Joe", first)

	last, ok := w.LastName()
	require.True(t, ok)
	assert.Equal(t, "Blogs", last)

	_, ok = w.EmailAddress()
	assert.False(t, ok)
	_, ok = w.URL()
	assert.False(t, ok)
}

func TestNoLeakBetweenScenarios(t *testing.T) {
	first := New(Options{Name: "first"})
	first.SetURL("https://example.com")

	second := New(Options{Name: "second"})
	_, ok := second.URL()
	assert.False(t, ok)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.NotSame(t, first, second)
}

func TestIdentityIsNeverReused(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New(Options{}).ID()
		require.False(t, seen[id], "world id %s reused", id)
		seen[id] = true
	}
}

func TestOptions(t *testing.T) {
	w := New(Options{
		ScenarioID: "pickle-1",
		Name:       "Valid contact us form submission",
		Logger:     zaptest.NewLogger(t),
		Parameters: map[string]string{"browser": "chromium"},
	})

	assert.Equal(t, "Valid contact us form submission", w.ScenarioName())

	v, ok := w.Parameter("browser")
	assert.True(t, ok)
	assert.Equal(t, "chromium", v)
	_, ok = w.Parameter("missing")
	assert.False(t, ok)

	require.NotNil(t, w.Logger())
}

func TestFailed(t *testing.T) {
	w := New(Options{})
	assert.False(t, w.Failed())
	w.Fail()
	assert.True(t, w.Failed())
}

func TestCleanup(t *testing.T) {
	t.Run("runs in reverse order and only once", func(t *testing.T) {
		w := New(Options{})
		var order []int
		w.AddCleanup(func() error { order = append(order, 1); return nil })
		w.AddCleanup(func() error { order = append(order, 2); return nil })

		require.NoError(t, w.Cleanup())
		require.NoError(t, w.Cleanup())
		assert.Equal(t, []int{2, 1}, order)
	})

	t.Run("keeps going after a failure and joins errors", func(t *testing.T) {
		w := New(Options{Name: "broken"})
		errA := errors.New("close tab")
		errB := errors.New("remove file")
		ran := false
		w.AddCleanup(func() error { return errA })
		w.AddCleanup(func() error { ran = true; return nil })
		w.AddCleanup(func() error { return errB })

		err := w.Cleanup()
		require.Error(t, err)
		assert.True(t, ran)
		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
		assert.Contains(t, err.Error(), `"broken"`)
	})

	t.Run("cleanup added afterwards runs on the next call", func(t *testing.T) {
		w := New(Options{})
		calls := 0
		w.AddCleanup(func() error { calls++; return nil })
		require.NoError(t, w.Cleanup())

		late := 0
		w.AddCleanup(func() error { late++; return nil })
		require.NoError(t, w.Cleanup())
		require.NoError(t, w.Cleanup())
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, late)
	})
}

func TestContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoWorld)

	w := New(Options{})
	got, err := FromContext(NewContext(context.Background(), w))
	require.NoError(t, err)
	assert.Same(t, w, got)

	_, err = FromContext(NewContext(context.Background(), nil))
	assert.ErrorIs(t, err, ErrNoWorld)
}
