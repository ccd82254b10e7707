package cmd

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"testing"

	"github.com/Rakhulsr/go-petshop/app/configs"
	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/Rakhulsr/go-petshop/app/store/storetest"
	"github.com/Rakhulsr/go-petshop/app/utils/format"
	"github.com/Rakhulsr/go-petshop/app/utils/media"
	"github.com/Rakhulsr/go-petshop/app/utils/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCodePattern = regexp.MustCompile(`ORD-\d{8}-[0-9A-F]{8}`)

type cliHarness struct {
	t   *testing.T
	app *App
	out *bytes.Buffer
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	out := &bytes.Buffer{}
	app := Wire(
		storetest.New(t),
		sessions.NewMemorySessionStore(),
		services.SHA256Hasher{},
		media.NewLocalStore(t.TempDir()),
		format.NewMoney("$"),
		out,
	)
	require.NoError(t, app.Bootstrap(context.Background()))
	return &cliHarness{t: t, app: app, out: out}
}

// run executes one command line on a fresh command tree and returns its output.
func (h *cliHarness) run(args ...string) (string, error) {
	h.t.Helper()
	h.out.Reset()
	err := NewRootCommand(Static(h.app)).Run(context.Background(), append([]string{"petshop"}, args...))
	return h.out.String(), err
}

func (h *cliHarness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *cliHarness) register(email string) {
	h.t.Helper()
	h.mustRun("register",
		"--name", "Jane Customer",
		"--email", email,
		"--phone", "081234567890",
		"--address", "12 Kennel Road",
		"--password", "Secret123",
		"--confirm", "Secret123",
	)
}

func TestShoppingFlow(t *testing.T) {
	h := newCLIHarness(t)

	out := h.mustRun("categories")
	assert.Contains(t, out, "Dog")
	assert.Contains(t, out, "Brush")

	h.register("jane@example.com")
	assert.Contains(t, h.mustRun("whoami"), "jane@example.com")

	out = h.mustRun("cart", "add", "--qty", "2", "1")
	assert.Contains(t, out, "Royal Canin Medium Adult")
	assert.Contains(t, out, "total $91.98")

	out = h.mustRun("checkout", "--payment", "Credit Card", "--notes", "Leave at the door")
	assert.Contains(t, out, "Order placed: ")
	assert.Contains(t, out, "total $91.98")
	code := orderCodePattern.FindString(out)
	require.NotEmpty(t, code, out)

	assert.Contains(t, h.mustRun("cart", "list"), "Your cart is empty.")

	out = h.mustRun("orders", "list")
	assert.Contains(t, out, code)
	assert.Contains(t, out, "PENDING")

	out = h.mustRun("orders", "show", code)
	assert.Contains(t, out, "Ship to:  12 Kennel Road")
	assert.Contains(t, out, "Payment:  Credit Card")
	assert.Contains(t, out, "Notes:    Leave at the door")

	out = h.mustRun("orders", "cancel", code)
	assert.Contains(t, out, "cancelled")

	_, err := h.run("orders", "cancel", code)
	assert.ErrorIs(t, err, services.ErrInvalidStatusTransition)

	order, err := h.app.Orders.OrderByCode(context.Background(), code)
	require.NoError(t, err)
	id := uintArg(order.ID)

	_, err = h.run("orders", "status", id, "PENDING")
	assert.ErrorIs(t, err, services.ErrInvalidStatusTransition)
	assert.Contains(t, h.mustRun("orders", "status", "--force", id, "PENDING"), "is now PENDING")
}

func TestCheckoutWithEmptyCart(t *testing.T) {
	h := newCLIHarness(t)
	h.register("empty@example.com")

	_, err := h.run("checkout")
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCommandsRequireLogin(t *testing.T) {
	h := newCLIHarness(t)

	for _, args := range [][]string{
		{"cart", "list"},
		{"cart", "add", "1"},
		{"checkout"},
		{"orders", "list"},
	} {
		_, err := h.run(args...)
		assert.ErrorIs(t, err, services.ErrNotLoggedIn, args)
	}
}

func TestLogoutKeepsCart(t *testing.T) {
	h := newCLIHarness(t)
	h.register("keep@example.com")
	h.mustRun("cart", "add", "3")

	assert.Contains(t, h.mustRun("logout"), "Logged out.")
	_, err := h.run("cart", "list")
	require.ErrorIs(t, err, services.ErrNotLoggedIn)

	h.mustRun("login", "--email", "keep@example.com", "--password", "Secret123")
	assert.Contains(t, h.mustRun("cart", "list"), "1 item(s)")
}

func TestRegisterReportsFormErrors(t *testing.T) {
	h := newCLIHarness(t)

	out, err := h.run("register",
		"--name", "Jo",
		"--email", "not-an-email",
		"--phone", "0812345678",
		"--address", "12 Kennel Road",
		"--password", "secret",
		"--confirm", "other",
	)
	require.Error(t, err)
	assert.Contains(t, out, "Name must be at least 10 characters.")
	assert.Contains(t, out, "Passwords do not match.")

	_, ok := h.app.Session.GetCustomerID()
	assert.False(t, ok)
}

func TestMissingSessionKeysBlockAccountCommands(t *testing.T) {
	h := newCLIHarness(t)
	h.app.sessionErr = configs.ErrSessionKeysMissing

	_, err := h.run("login", "--email", "jane@example.com", "--password", "Secret123")
	assert.ErrorIs(t, err, configs.ErrSessionKeysMissing)

	// Browsing the catalog needs no session.
	assert.Contains(t, h.mustRun("products", "--category", "cat"), "PRICE")
}

func TestCartCommandsOnlyTouchOwnLines(t *testing.T) {
	h := newCLIHarness(t)
	h.register("first@example.com")
	h.mustRun("cart", "add", "1")

	lines, err := h.app.Cart.CartWithProducts(context.Background(), mustCustomer(t, h.app))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	lineID := lines[0].CartItem.ID

	h.mustRun("logout")
	h.register("second@example.com")

	_, err = h.run("cart", "rm", uintArg(lineID))
	assert.Error(t, err)

	_, err = h.run("cart", "set", uintArg(lineID), "5")
	assert.Error(t, err)

	item, err := h.app.Cart.CartItem(context.Background(), lineID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 1, item.Quantity)
}

func mustCustomer(t *testing.T, app *App) uint {
	t.Helper()
	id, err := app.RequireCustomer()
	require.NoError(t, err)
	return id
}

func uintArg(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
