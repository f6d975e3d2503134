package cart

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/models"
)

func TestRenderEmpty(t *testing.T) {
	v := New(NewMemoryStorage()).Render()

	assert.True(t, v.Empty)
	assert.Equal(t, 0, v.Count)
	assert.Empty(t, v.Rows)
	assert.Equal(t, "$0.00", v.SubtotalText())
}

func TestRenderSubtotal(t *testing.T) {
	c := New(NewMemoryStorage())
	require.NoError(t, c.Add(models.CartItem{ID: "a", Name: "A", Price: 10, Quantity: 2, Size: "M", Color: "Indigo"}))
	require.NoError(t, c.Add(models.CartItem{ID: "b", Name: "B", Price: 5, Quantity: 3, Size: "S", Color: "Rose"}))

	v := c.Render()
	assert.False(t, v.Empty)
	assert.Equal(t, 5, v.Count)
	assert.InDelta(t, 35.0, v.Subtotal, 1e-9)
	assert.Equal(t, "$35.00", v.SubtotalText())

	require.Len(t, v.Rows, 2)
	assert.Equal(t, Row{ID: "a", Name: "A", Variant: "Indigo, M", UnitPrice: "$10", Quantity: 2, LineTotal: "$20.00"}, v.Rows[0])
	assert.Equal(t, "$15.00", v.Rows[1].LineTotal)
}

func TestRenderFractionalPrices(t *testing.T) {
	v := render([]models.CartItem{{ID: "a", Price: 19.99, Quantity: 3}})

	assert.Equal(t, "$19.99", v.Rows[0].UnitPrice)
	assert.Equal(t, "$59.97", v.Rows[0].LineTotal)
	assert.Equal(t, "$59.97", v.SubtotalText())
}

func TestRenderHTML(t *testing.T) {
	var empty strings.Builder
	require.NoError(t, RenderHTML(&empty, render(nil)))
	assert.Contains(t, empty.String(), EmptyMessage)
	assert.Contains(t, empty.String(), "$0.00")

	var full strings.Builder
	v := render([]models.CartItem{{ID: "d1", Name: "<Indigo>", Price: 10, Quantity: 2, Size: "M", Color: "Indigo", Image: "/uploads/x.jpg"}})
	require.NoError(t, RenderHTML(&full, v))
	out := full.String()
	assert.NotContains(t, out, EmptyMessage)
	assert.Contains(t, out, `data-id="d1"`)
	assert.Contains(t, out, "&lt;Indigo&gt;")
	assert.Contains(t, out, "$10 × 2")
	assert.Contains(t, out, "$20.00")
}

func TestSidebarToggle(t *testing.T) {
	var s Sidebar
	assert.False(t, s.Open())

	assert.True(t, s.Toggle())
	assert.True(t, s.ScrollLocked())

	assert.False(t, s.Toggle())
	assert.False(t, s.ScrollLocked())
}

type scheduled struct {
	at time.Duration
	f  func()
}

// fakeClock runs scheduled callbacks when advanced
type fakeClock struct {
	now     time.Duration
	pending []scheduled
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) {
	c.pending = append(c.pending, scheduled{at: c.now + d, f: f})
}

func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		next := -1
		for i, s := range c.pending {
			if s.at <= target && (next < 0 || s.at < c.pending[next].at) {
				next = i
			}
		}
		if next < 0 {
			c.now = target
			return
		}
		s := c.pending[next]
		c.pending = append(c.pending[:next], c.pending[next+1:]...)
		c.now = s.at
		s.f()
	}
}

func TestToastLifecycle(t *testing.T) {
	clock := &fakeClock{}
	toaster := NewToaster(clock.AfterFunc)

	id := toaster.Show("Indigo Dress added to cart")
	require.Len(t, toaster.Active(), 1)
	assert.Equal(t, ToastShown, toaster.Active()[0].State)

	clock.Advance(ToastVisible - time.Millisecond)
	assert.Equal(t, ToastShown, toaster.Active()[0].State)

	clock.Advance(time.Millisecond)
	require.Len(t, toaster.Active(), 1)
	assert.Equal(t, id, toaster.Active()[0].ID)
	assert.Equal(t, ToastFading, toaster.Active()[0].State)

	clock.Advance(ToastFade)
	assert.Empty(t, toaster.Active())
}

func TestToastsAreIndependent(t *testing.T) {
	clock := &fakeClock{}
	toaster := NewToaster(clock.AfterFunc)

	toaster.Show("first")
	clock.Advance(time.Second)
	toaster.Show("second")

	clock.Advance(ToastVisible + ToastFade - time.Second)
	active := toaster.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "second", active[0].Message)
}
