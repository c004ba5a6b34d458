package backend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeBackend struct{ name string }

func (f *fakeBackend) Name() string                                { return f.name }
func (f *fakeBackend) CreateSurface(opts Options) (Surface, error) { return nil, ErrUnsupported }
func (f *fakeBackend) PollEvents()                                 {}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("no-such-backend")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "no-such-backend", nf.Name)
}

func TestOpenUnavailableBackend(t *testing.T) {
	Register("test-unavail", 50, func() (Backend, error) {
		return &fakeBackend{name: "test-unavail"}, nil
	}, func() bool { return false })

	_, err := Open("test-unavail")
	var ua *UnavailableError
	assert.ErrorAs(t, err, &ua)

	assert.NotContains(t, Available(), "test-unavail")
	assert.Contains(t, Names(), "test-unavail")
}

func TestOpenCachesInstance(t *testing.T) {
	calls := 0
	Register("test-cached", 40, func() (Backend, error) {
		calls++
		return &fakeBackend{name: "test-cached"}, nil
	}, nil)

	a, err := Open("test-cached")
	assert.NoError(t, err)
	b, err := Open("test-cached")
	assert.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)
}

func TestBestPrefersPriorityAndFallsThrough(t *testing.T) {
	Register("test-broken", 90, func() (Backend, error) {
		return nil, errors.New("driver init failed")
	}, nil)
	Register("test-low", 5, func() (Backend, error) {
		return &fakeBackend{name: "test-low"}, nil
	}, nil)

	b, err := Best()
	assert.NoError(t, err)

	// test-broken fails to instantiate; Best must keep walking down the
	// priority list instead of giving up.
	assert.NotEqual(t, "test-broken", b.Name())
}
